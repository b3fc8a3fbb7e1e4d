package uid

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates Twitter-style 63-bit IDs for one node.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator for node, which must be in [0, 1023].
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &Snowflake{node: n}, nil
}

func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
