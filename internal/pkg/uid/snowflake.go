package uid

import (
	"crypto/rand"
	"math/big"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered int64 identifiers.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a Snowflake generator.
//
// The node number is taken from the SNOWFLAKE_NODE environment variable when
// set, otherwise a random node in [0, 1024) is used.
func NewSnowflake() (*Snowflake, error) {
	nodeNum, err := nodeNumber()
	if err != nil {
		return nil, err
	}

	node, err := snowflake.NewNode(nodeNum)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func nodeNumber() (int64, error) {
	if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return n, nil
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1024))
	if err != nil {
		return 0, err
	}

	return n.Int64(), nil
}
