package counter_test

import (
	"sync"
	"testing"

	"go-ess/internal/shared/counter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestCounterSchema(t *testing.T) {
	s, err := schema.Parse(&counter.Counter{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Equal(t, "ess_counters", s.Table)
	// ON CONFLICT (scope, counter_type) needs this key.
	assert.Equal(t, []string{"scope", "counter_type"}, s.PrimaryFieldDBNames)
	assert.NotNil(t, s.LookUpField("last_value"))
	assert.NotNil(t, s.LookUpField("updated_at"))
}
