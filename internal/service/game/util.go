package game

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/google/uuid"
)

func GenID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("Failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// ShortID 返回 8 位短标识，用于会话、玩家和连接
func ShortID() string {
	id := GenID()

	return id[len(id)-8:]
}

// rollDice 均匀抽取 [1, 6]
func rollDice() int {
	return rand.IntN(6) + 1
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic("Failed to marshal: " + err.Error())
	}

	return data
}
