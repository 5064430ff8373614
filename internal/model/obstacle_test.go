package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObstacleValidate(t *testing.T) {
	tests := []struct {
		name     string
		obstacle Obstacle
		wantErr  bool
	}{
		{"valid rect", NewRectObstacle(1, 0, 0, 10, 10), false},
		{"valid circle", NewCircleObstacle(1, 5, 5, 2.5), false},
		{"zero radius circle", NewCircleObstacle(1, 5, 5, 0), true},
		{"negative radius circle", NewCircleObstacle(1, 5, 5, -1), true},
		{"unknown shape", Obstacle{Shape: "triangle"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.obstacle.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
