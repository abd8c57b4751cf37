// Package deployment defines the persisted form of a compiled process graph.
package deployment

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Key identifies one deployed version of a process
type Key struct {
	ProcessKey uint64 `json:"processKey" yaml:"processKey"`
	Version    int    `json:"version" yaml:"version"`
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d", k.ProcessKey, k.Version)
}

// Deployment is an encoded process graph together with its identity
type Deployment struct {
	ID        string    `json:"id"`
	Key       Key       `json:"key"`
	ProcessID string    `json:"processId"`
	Checksum  string    `json:"checksum"`
	Graph     []byte    `json:"graph"`
	Created   time.Time `json:"created"`
}

// Validate checks that the deployment can be persisted
func (d *Deployment) Validate() error {
	switch {
	case d.ProcessID == "":
		return fmt.Errorf("deployment %v: process id was empty", d.Key)
	case d.Key.Version < 1:
		return fmt.Errorf("deployment %v: invalid version %d", d.Key, d.Key.Version)
	case len(d.Graph) == 0:
		return fmt.Errorf("deployment %v: graph was empty", d.Key)
	}
	return nil
}

// Checksum returns the hex encoded SHA-256 of an encoded graph
func Checksum(graph []byte) string {
	sum := sha256.Sum256(graph)
	return hex.EncodeToString(sum[:])
}
