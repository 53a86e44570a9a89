/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package periodicjobs runs background jobs on fixed intervals.
package periodicjobs

import (
	"context"
	"sync"
	"time"

	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/sirupsen/logrus"
)

// PeriodicTask is a job the PeriodicTaskManager runs on an interval
type PeriodicTask interface {
	GetName() string
	GetInterval() time.Duration
	Run(ctx context.Context) error
}

// PeriodicTaskManager owns a set of tasks and runs each one in its own
// goroutine until the context passed to Start is canceled.
type PeriodicTaskManager struct {
	mu    sync.Mutex
	tasks []PeriodicTask

	// runOnStart runs every task once before its first tick
	runOnStart bool
}

func NewPeriodicTaskManager(runOnStart bool) *PeriodicTaskManager {
	return &PeriodicTaskManager{runOnStart: runOnStart}
}

func (m *PeriodicTaskManager) AddTask(task PeriodicTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, task)
}

func (m *PeriodicTaskManager) Tasks() []PeriodicTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PeriodicTask(nil), m.tasks...)
}

// Start blocks until ctx is done. Task failures are logged and the task keeps
// its schedule.
func (m *PeriodicTaskManager) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for _, task := range m.Tasks() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.runTask(ctx, task)
		}()
	}
	wg.Wait()
}

func (m *PeriodicTaskManager) runTask(ctx context.Context, task PeriodicTask) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"task":     task.GetName(),
		"interval": task.GetInterval().String(),
	})

	interval := task.GetInterval()
	if interval <= 0 {
		log.Warn("task has no interval, not scheduling it")
		return
	}

	run := func() {
		start := time.Now()
		if err := task.Run(ctx); err != nil {
			log.WithError(err).Error("periodic task failed")
			return
		}
		log.WithField("duration", time.Since(start).String()).Debug("periodic task completed")
	}

	if m.runOnStart {
		run()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("stopping periodic task")
			return
		case <-ticker.C:
			run()
		}
	}
}
