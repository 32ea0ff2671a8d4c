package domain

import "strings"

type ProjectStatus string

const (
	StatusUndecided      = ProjectStatus("未定")
	StatusPreparing      = ProjectStatus("依頼準備中")
	StatusInProduction   = ProjectStatus("制作中")
	StatusUnderReview    = ProjectStatus("振興会確認中")
	StatusRevisionNeeded = ProjectStatus("修正指示あり")
	StatusAwaitingPrint  = ProjectStatus("印刷・納品待ち")
	StatusDone           = ProjectStatus("完了")
	StatusNotNeeded      = ProjectStatus("不要")

	InitialStatus = StatusUndecided

	PhaseCount = 7
)

var allStatuses = []ProjectStatus{
	StatusUndecided, StatusPreparing, StatusInProduction, StatusUnderReview,
	StatusRevisionNeeded, StatusAwaitingPrint, StatusDone, StatusNotNeeded,
}

// AllStatuses returns every valid status value.
func AllStatuses() []ProjectStatus {
	return append([]ProjectStatus(nil), allStatuses...)
}

// SelectableStatuses returns the values offered by the status updater.
// StatusNotNeeded is accepted on update but never offered.
func SelectableStatuses() []ProjectStatus {
	return append([]ProjectStatus(nil), allStatuses[:PhaseCount]...)
}

func (s ProjectStatus) Valid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Highlighted reports whether the list should call attention to the status.
func (s ProjectStatus) Highlighted() bool {
	return s == StatusRevisionNeeded
}

// PhaseOf maps a status onto one of the seven display phases. Unknown values
// land in phase 1.
func PhaseOf(s ProjectStatus) int {
	switch s {
	case StatusUndecided, StatusNotNeeded:
		return 1
	case StatusPreparing:
		return 2
	case StatusInProduction:
		return 3
	case StatusUnderReview:
		return 4
	case StatusRevisionNeeded:
		return 5
	case StatusAwaitingPrint:
		return 6
	case StatusDone:
		return 7
	default:
		return 1
	}
}

// ParseStatus accepts any of the eight status values, including StatusNotNeeded.
func ParseStatus(s string) (ProjectStatus, error) {
	status := ProjectStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
