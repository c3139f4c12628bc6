package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "clinicore/internal/auth/domain"
	"clinicore/internal/events"
	patientdomain "clinicore/internal/patient/domain"
)

func TestInMemoryPublisherRecordsEvents(t *testing.T) {
	pub := events.NewInMemoryPublisher()
	now := time.Now()

	evt := authdomain.NewUserRegisteredEvent(
		authdomain.NewUserID(),
		authdomain.MustUsername("alice"),
		authdomain.MustEmail("alice@example.com"),
		now,
	)
	require.NoError(t, pub.Publish(context.Background(), evt))

	published := pub.Events()
	require.Len(t, published, 1)
	assert.Equal(t, authdomain.EventUserRegistered, published[0].EventName())
	assert.NotEmpty(t, published[0].EventID())
	assert.Equal(t, now, published[0].OccurredOn())
}

func TestInMemoryPublisherNamed(t *testing.T) {
	pub := events.NewInMemoryPublisher()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, pub.Publish(ctx, authdomain.NewUserRegisteredEvent(
		authdomain.NewUserID(),
		authdomain.MustUsername("alice"),
		authdomain.MustEmail("alice@example.com"),
		now,
	)))
	require.NoError(t, pub.Publish(ctx, authdomain.NewUserLoggedInEvent(
		authdomain.NewUserID(),
		authdomain.MustEmail("alice@example.com"),
		"Chrome on Mac OS X",
		now,
	)))

	assert.Len(t, pub.Named(authdomain.EventUserLoggedIn), 1)
	assert.Len(t, pub.Named(authdomain.EventUserRegistered), 1)
	assert.Empty(t, pub.Named(patientdomain.EventPatientRegistered))
}
