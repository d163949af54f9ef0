package world

import (
	"fmt"
	"sync/atomic"
)

// IDGenerator issues unique entity ids for one play session.
// Prefixes keep the ranges apart in logs and in the combat registry:
//
//	player-N    player characters
//	enemy-N     hostile agents spawned by the wave director
//	animal-N    protectable livestock
type IDGenerator struct {
	nextPlayer atomic.Uint64
	nextEnemy  atomic.Uint64
	nextAnimal atomic.Uint64
}

// NewIDGenerator creates a generator with every range starting at 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NextPlayerID generates next unique player id.
func (g *IDGenerator) NextPlayerID() string {
	return fmt.Sprintf("player-%d", g.nextPlayer.Add(1))
}

// NextEnemyID generates next unique enemy id.
func (g *IDGenerator) NextEnemyID() string {
	return fmt.Sprintf("enemy-%d", g.nextEnemy.Add(1))
}

// NextAnimalID generates next unique livestock id.
func (g *IDGenerator) NextAnimalID() string {
	return fmt.Sprintf("animal-%d", g.nextAnimal.Add(1))
}
