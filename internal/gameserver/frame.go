package gameserver

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// Wire framing: every packet is preceded by a uint16 LE length that
// includes the 2-byte header itself.
const (
	frameHeaderSize = 2
	maxFrameSize    = 0xFFFF
)

// readFrame reads one packet into buf (len >= maxFrameSize) and returns the
// payload: opcode + body. The payload is valid until the next call.
func readFrame(r io.Reader, buf []byte) ([]byte, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	size := int(binary.LittleEndian.Uint16(header[:]))
	if size < frameHeaderSize {
		return nil, fmt.Errorf("invalid frame length %d", size)
	}

	payload := buf[:size-frameHeaderSize]
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("reading frame body (%d bytes): %w", len(payload), err)
	}
	return payload, nil
}

// appendFrame appends header + payload to dst.
func appendFrame(dst, payload []byte) ([]byte, error) {
	size := len(payload) + frameHeaderSize
	if size > maxFrameSize {
		return dst, fmt.Errorf("packet too large: %d bytes", size)
	}
	dst = binary.LittleEndian.AppendUint16(dst, uint16(size))
	return append(dst, payload...), nil
}

// tcpConn is the Conn of a network session. Send may be called from other
// players' goroutines (broadcasts), so writes are serialized.
type tcpConn struct {
	conn         net.Conn
	writeTimeout time.Duration

	mu sync.Mutex
}

func (c *tcpConn) Send(data []byte) error {
	frame, err := appendFrame(make([]byte, 0, len(data)+frameHeaderSize), data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return fmt.Errorf("setting write deadline: %w", err)
		}
	}
	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("writing packet: %w", err)
	}
	return nil
}
