package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glambook/glambook-backend/pkg/logger"
)

type stubJob struct {
	name string
	runs int
	err  error
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) Run(context.Context) error {
	j.runs++
	return j.err
}

type stubLock struct {
	acquired bool
	releases int
}

func (l *stubLock) Acquire(context.Context) (bool, error) { return l.acquired, nil }
func (l *stubLock) Release(context.Context) error {
	l.releases++
	return nil
}

func cronLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Level: zerolog.Disabled, Output: io.Discard})
}

func TestRegistryKeepsOrderAndSkipsNil(t *testing.T) {
	first := &stubJob{name: "first"}
	second := &stubJob{name: "second"}

	registry := NewRegistry(first, nil)
	registry.Register(second)
	registry.Register(nil)

	jobs := registry.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "first", jobs[0].Name())
	assert.Equal(t, "second", jobs[1].Name())
}

func TestRunCycleRunsEveryJob(t *testing.T) {
	job := &stubJob{name: "audit"}
	failing := &stubJob{name: "flaky", err: errors.New("boom")}
	lock := &stubLock{acquired: true}

	svc, err := NewService(ServiceParams{
		Logger:   cronLogger(),
		Registry: NewRegistry(job, failing),
		Lock:     lock,
		Interval: time.Hour,
	})
	require.NoError(t, err)

	require.NoError(t, svc.runCycle(context.Background()))
	assert.Equal(t, 1, job.runs)
	assert.Equal(t, 1, failing.runs)
	assert.Equal(t, 1, lock.releases)
}

func TestRunCycleSkipsWhenLockHeldElsewhere(t *testing.T) {
	job := &stubJob{name: "audit"}
	lock := &stubLock{acquired: false}

	svc, err := NewService(ServiceParams{
		Logger:   cronLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
		Interval: time.Hour,
	})
	require.NoError(t, err)

	require.NoError(t, svc.runCycle(context.Background()))
	assert.Zero(t, job.runs)
	assert.Zero(t, lock.releases)
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(ServiceParams{Lock: &stubLock{}})
	require.Error(t, err)

	_, err = NewService(ServiceParams{Logger: cronLogger()})
	require.Error(t, err)
}

type stubRedis struct {
	values map[string]string
	setNX  bool
}

func (s *stubRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if !s.setNX {
		return false, nil
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *stubRedis) Get(_ context.Context, key string) (string, error) {
	return s.values[key], nil
}

func (s *stubRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func TestRedisLockRoundTrip(t *testing.T) {
	store := &stubRedis{setNX: true}
	lock, err := NewRedisLock(store, "gb:lock:audit", time.Minute)
	require.NoError(t, err)

	ok, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, store.values["gb:lock:audit"])

	require.NoError(t, lock.Release(context.Background()))
	assert.Empty(t, store.values["gb:lock:audit"])
}

func TestRedisLockContention(t *testing.T) {
	store := &stubRedis{setNX: false}
	lock, err := NewRedisLock(store, "gb:lock:audit", time.Minute)
	require.NoError(t, err)

	ok, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	// Releasing an unowned lock is a no-op.
	require.NoError(t, lock.Release(context.Background()))
}
