package server_test

import (
	"testing"

	"goods-receiving/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_HasAuth(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"With key", "secret", true},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ApiKey: tt.apiKey}
			assert.Equal(t, tt.want, c.HasAuth())
		})
	}
}
