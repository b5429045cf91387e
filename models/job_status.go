package models

import "github.com/pkg/errors"

type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusArchived JobStatus = "archived"
)

// JobStatusAll значение фильтра "без фильтрации по статусу"
const JobStatusAll = "all"

func (s JobStatus) Validate() error {
	switch s {
	case JobStatusActive, JobStatusArchived:
		return nil
	}
	return errors.Errorf("неизвестный статус вакансии: %v", s)
}

// Toggle переключает active <-> archived, третьего состояния нет
func (s JobStatus) Toggle() JobStatus {
	if s == JobStatusActive {
		return JobStatusArchived
	}
	return JobStatusActive
}
