package deployment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeployment_Validate(t *testing.T) {
	testCases := []struct {
		description string
		deployment  Deployment
		expectErr   bool
	}{
		{description: "valid", deployment: Deployment{ProcessID: "p", Key: Key{ProcessKey: 1, Version: 1}, Graph: []byte{1}}},
		{description: "missing process", deployment: Deployment{Key: Key{Version: 1}, Graph: []byte{1}}, expectErr: true},
		{description: "zero version", deployment: Deployment{ProcessID: "p", Graph: []byte{1}}, expectErr: true},
		{description: "empty graph", deployment: Deployment{ProcessID: "p", Key: Key{Version: 2}}, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.deployment.Validate()
			assert.Equal(t, tc.expectErr, err != nil)
		})
	}
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))
	assert.NotEqual(t, Checksum([]byte{1}), Checksum([]byte{2}))
	assert.Equal(t, "1/2", Key{ProcessKey: 1, Version: 2}.String())
}
