package gameserver

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/udisondev/portalgate/internal/gameserver/serverpackets"
)

const (
	dropEncode = "encode"
	dropSend   = "send"
)

var (
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gameserver_sessions_active",
		Help: "In-game sessions registered in the client manager",
	})

	packetsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gameserver_packets_sent_total",
		Help: "Server packets delivered to a connection",
	})

	packetsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameserver_packets_dropped_total",
		Help: "Server packets that were not delivered",
	}, []string{"reason"})

	requestsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameserver_requests_total",
		Help: "Client requests by opcode and outcome",
	}, []string{"opcode", "outcome"})
)

func packetName(pkt serverpackets.Packet) string {
	return fmt.Sprintf("%T", pkt)
}

func opcodeLabel(op uint16) string {
	return fmt.Sprintf("0x%04X", op)
}
