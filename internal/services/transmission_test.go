package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
)

func TestTransmissionCreateValidates(t *testing.T) {
	svc := NewTransmissionService(newFakeTransmissionRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input types.Transmission
		field string
	}{
		{"missing title", types.Transmission{Description: "body"}, "title"},
		{"blank description", types.Transmission{Title: "Day 1", Description: "   "}, "description"},
		{"negative day", types.Transmission{Title: "Day 1", Description: "body", DayNumber: -1}, "day_number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestTransmissionListAndLatest(t *testing.T) {
	events := &recordingPublisher{}
	svc := NewTransmissionService(newFakeTransmissionRepo(), events)
	ctx := context.Background()

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	blank := "  "
	_, err = svc.Create(ctx, types.Transmission{Title: "Day 3", Description: "third", DayNumber: 3, VideoURL: &blank})
	require.NoError(t, err)
	_, err = svc.Create(ctx, types.Transmission{Title: "Day 7", Description: "seventh", DayNumber: 7})
	require.NoError(t, err)
	second7, err := svc.Create(ctx, types.Transmission{Title: "Day 7 again", Description: "encore", DayNumber: 7})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Day 7 again", list[0].Title)
	assert.Equal(t, "Day 7", list[1].Title)
	assert.Equal(t, "Day 3", list[2].Title)
	assert.Nil(t, list[2].VideoURL)

	latest, err = svc.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second7.ID, latest.ID)

	assert.Len(t, events.eventTypes(), 3)
}

func TestTransmissionDelete(t *testing.T) {
	svc := NewTransmissionService(newFakeTransmissionRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, types.Transmission{Title: "Day 1", Description: "first", DayNumber: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), store.ErrNotFound)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
