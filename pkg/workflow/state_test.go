package workflow_test

import (
	"testing"

	"github.com/serenelab/wellspring/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_TypedAccessors(t *testing.T) {
	s := workflow.NewState()
	s.Set("name", "wellspring")
	s.Set("count", 3)
	s.Set("ratio", 1.5)

	assert.Equal(t, "wellspring", s.String("name"))
	assert.Equal(t, "", s.String("count"), "non-string values read as empty string")
	assert.Equal(t, 3.0, s.Float("count"))
	assert.Equal(t, 1.5, s.Float("ratio"))

	v, ok := s.Get("name")
	require.True(t, ok)
	assert.Equal(t, "wellspring", v)
}

func TestState_DecodeStruct(t *testing.T) {
	type profile struct {
		Age    int    `mapstructure:"age"`
		Gender string `mapstructure:"gender"`
	}

	t.Run("from map value", func(t *testing.T) {
		s := workflow.NewState()
		s.Set("profile", map[string]any{"age": 30, "gender": "Male"})

		var p profile
		require.NoError(t, s.Decode("profile", &p))
		assert.Equal(t, 30, p.Age)
		assert.Equal(t, "Male", p.Gender)
	})

	t.Run("from typed value", func(t *testing.T) {
		s := workflow.NewState()
		s.Set("profile", profile{Age: 41, Gender: "Female"})

		var p profile
		require.NoError(t, s.Decode("profile", &p))
		assert.Equal(t, 41, p.Age)
	})

	t.Run("absent field errors", func(t *testing.T) {
		s := workflow.NewState()
		var p profile
		assert.Error(t, s.Decode("missing", &p))
	})
}

func TestState_Notices(t *testing.T) {
	s := workflow.NewState()
	s.AddNotice("collaborator %s unavailable", "search")
	require.Len(t, s.Notices, 1)
	assert.Equal(t, "collaborator search unavailable", s.Notices[0])
}
