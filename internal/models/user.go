package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"`
	BlockedUsers BlockList `json:"blockedUsers" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BlockList is the set of user ids a user has blocked, stored as a JSON
// array in a single text column. Insertion order is preserved but carries
// no meaning; ids never repeat.
type BlockList []uint

func (b BlockList) Contains(id uint) bool {
	for _, blocked := range b {
		if blocked == id {
			return true
		}
	}
	return false
}

// Add inserts id into the list. Adding an id that is already present is a
// no-op, preserving set semantics.
func (b BlockList) Add(id uint) BlockList {
	if b.Contains(id) {
		return b
	}
	return append(b, id)
}

// Remove drops id from the list; removing an absent id is a no-op.
func (b BlockList) Remove(id uint) BlockList {
	out := make(BlockList, 0, len(b))
	for _, blocked := range b {
		if blocked != id {
			out = append(out, blocked)
		}
	}
	return out
}

// Value implements driver.Valuer. An empty list is stored as "[]" rather
// than NULL so Scan always has something to decode.
func (b BlockList) Value() (driver.Value, error) {
	if b == nil {
		b = BlockList{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (b *BlockList) Scan(value interface{}) error {
	if value == nil {
		*b = BlockList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into BlockList", value)
	}
	if len(data) == 0 {
		*b = BlockList{}
		return nil
	}
	return json.Unmarshal(data, b)
}
