package serverpackets

import (
	"fmt"

	"github.com/udisondev/portalgate/internal/gameserver/packet"
	"github.com/udisondev/portalgate/internal/model"
)

// ItemTaskKind — вид изменения одного слота.
type ItemTaskKind byte

const (
	ItemTaskCountUpdate ItemTaskKind = 4
	ItemTaskRemove      ItemTaskKind = 5
)

// ItemTask is one inventory change inside ItemTaskSuccess.
// Count is the signed delta for ItemTaskCountUpdate and zero for ItemTaskRemove.
type ItemTask struct {
	Kind         ItemTaskKind
	ItemObjectID uint32
	ItemID       uint32
	Count        int32
}

// ItemTaskSuccess reports a batch of inventory changes caused by one action.
//
// Layout: opcode(u16) taskType(u8) n(u8) n*{kind(u8) objID(u32) itemID(u32) count(i32)} forced(u8)=0
type ItemTaskSuccess struct {
	TaskType byte
	Tasks    []ItemTask
}

// NewItemTaskSuccess builds the packet from inventory removals: a stack that
// reached zero becomes a remove task, anything else a negative count update.
func NewItemTaskSuccess(taskType byte, removals []model.ItemRemoval) *ItemTaskSuccess {
	tasks := make([]ItemTask, 0, len(removals))
	for _, r := range removals {
		task := ItemTask{
			ItemObjectID: r.Item.ObjectID(),
			ItemID:       r.Item.ItemID(),
		}
		if r.Item.Count() == 0 {
			task.Kind = ItemTaskRemove
		} else {
			task.Kind = ItemTaskCountUpdate
			task.Count = -r.Count
		}
		tasks = append(tasks, task)
	}
	return &ItemTaskSuccess{TaskType: taskType, Tasks: tasks}
}

// Write serializes the ItemTaskSuccess packet.
func (p *ItemTaskSuccess) Write() ([]byte, error) {
	if len(p.Tasks) > 255 {
		return nil, fmt.Errorf("item task success: too many tasks (%d)", len(p.Tasks))
	}

	w := packet.NewWriter(5 + len(p.Tasks)*13)
	w.WriteShort(int16(OpcodeItemTaskSuccess))
	_ = w.WriteByte(p.TaskType)
	_ = w.WriteByte(byte(len(p.Tasks)))
	for _, t := range p.Tasks {
		_ = w.WriteByte(byte(t.Kind))
		w.WriteUInt(t.ItemObjectID)
		w.WriteUInt(t.ItemID)
		w.WriteInt(t.Count)
	}
	_ = w.WriteByte(0) // forced removals
	return w.Bytes(), nil
}
