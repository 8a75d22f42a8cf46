package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SequenceSchedule: configuração da sequência de follow-up. Um offset em dias
// por passo, mais a janela de horário (UTC) para os passos depois do primeiro.
type SequenceSchedule struct {
	DayOffsets []int
	StartHour  int
	EndHour    int
}

func NewSequenceSchedule(dayOffsets []int, startHour, endHour int) (*SequenceSchedule, error) {
	if len(dayOffsets) == 0 {
		return nil, errors.New("sequência de emails vazia")
	}
	for i, d := range dayOffsets {
		if d < 0 {
			return nil, fmt.Errorf("offset negativo no passo %d", i)
		}
	}
	if startHour < 0 || startHour > 23 {
		return nil, errors.New("FOLLOWUP_START_HOUR deve estar entre 0 e 23")
	}
	if endHour < 0 || endHour > 23 {
		return nil, errors.New("FOLLOWUP_END_HOUR deve estar entre 0 e 23")
	}
	return &SequenceSchedule{
		DayOffsets: dayOffsets,
		StartHour:  startHour,
		EndHour:    endHour,
	}, nil
}

// ParseSequence interpreta EMAIL_SEQUENCE no formato "3,7,14"
func ParseSequence(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	offsets := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("EMAIL_SEQUENCE inválida (%q): %w", p, err)
		}
		offsets = append(offsets, d)
	}
	return offsets, nil
}

func (s *SequenceSchedule) Len() int {
	return len(s.DayOffsets)
}

// InsideWindow diz se a hora atual cai dentro de [StartHour, EndHour]
func (s *SequenceSchedule) InsideWindow(hour int) bool {
	return hour >= s.StartHour && hour <= s.EndHour
}
