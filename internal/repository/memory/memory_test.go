package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/aqdash/internal/domain"
)

func TestDemoRepository(t *testing.T) {
	repo := NewDemoRepository()
	assert.Equal(t, "memory", repo.Describe())
	assert.NoError(t, repo.Health(context.Background()))

	ds, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 28, ds.Len())
	assert.Equal(t, []string{"Almaty", "Astana", "Delhi", "Oslo"}, ds.Cities())

	gaps := 0
	for _, r := range ds.Records {
		require.NotNil(t, r.AQI)
		if r.PM25 == nil {
			assert.Equal(t, "Oslo", r.City)
			gaps++
		}
	}
	assert.Equal(t, 3, gaps)
}

func TestMemoryRepository_LoadReturnsCopies(t *testing.T) {
	records := []domain.Record{{City: "Oslo", AQI: domain.Float(30)}}
	repo := NewMemoryRepository(records)
	records[0].City = "changed"

	first, err := repo.Load(context.Background())
	require.NoError(t, err)
	first.Records[0].City = "mutated"

	second, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Oslo", second.Records[0].City)
	assert.NotEqual(t, first.Version, second.Version)
}
