// file: internals/features/timetable/schedule/service/adapter.go
package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/bytedance/sonic"

	m "planova_backend/internals/features/timetable/schedule/model"
)

var (
	errNullSlot    = errors.New("slot is null")
	errNotSequence = errors.New("day is not a slot sequence")
	errMissingDay  = errors.New("day is missing")
)

type dayStatus int

const (
	dayOK dayStatus = iota
	dayMissing
	dayBroken
)

type decodedDay struct {
	status dayStatus
	slots  []map[string]json.RawMessage
	err    error
}

// Normalize turns the raw Day->slots mapping from the scheduling service into
// a full Mon..Fri schedule. It never fails as a whole: a missing or invalid
// day becomes a "No Data" row, a day whose slots cannot be decoded becomes an
// "Error" row, and short days are padded with "No Data" slots.
func Normalize(raw map[string]json.RawMessage, numBatches int) m.Schedule {
	switch {
	case numBatches < 1:
		numBatches = 1
	case numBatches > m.MaxBatches:
		log.Printf("[ADAPTER] num_batches=%d clamped to %d", numBatches, m.MaxBatches)
		numBatches = m.MaxBatches
	}

	decoded := make([]decodedDay, len(m.Days))
	for i, day := range m.Days {
		decoded[i] = decodeDay(raw, day)
		switch decoded[i].status {
		case dayMissing:
			log.Printf("[ADAPTER] %s: %v, using placeholder row", day, decoded[i].err)
		case dayBroken:
			log.Printf("[ADAPTER] %s: %v, degrading to error row", day, decoded[i].err)
		}
	}

	slotCount := referenceSlotCount(decoded)
	labels := slotLabels(decoded, slotCount)

	out := m.Schedule{
		NumBatches: numBatches,
		SlotCount:  slotCount,
		Labels:     labels,
		Rows:       make([]m.DaySchedule, 0, len(m.Days)),
	}

	for i, day := range m.Days {
		d := decoded[i]
		switch d.status {
		case dayMissing:
			out.Rows = append(out.Rows, placeholderRow(day, labels, m.MarkerNoData))
			continue
		case dayBroken:
			out.Rows = append(out.Rows, placeholderRow(day, labels, m.MarkerError))
			continue
		}

		row, err := buildRow(day, d.slots, labels, numBatches)
		if err != nil {
			log.Printf("[ADAPTER] %s: %v, degrading to error row", day, err)
			out.Rows = append(out.Rows, placeholderRow(day, labels, m.MarkerError))
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func decodeDay(raw map[string]json.RawMessage, day m.Day) decodedDay {
	body, ok := raw[string(day)]
	if !ok || len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return decodedDay{status: dayMissing, err: errMissingDay}
	}

	var items []json.RawMessage
	if err := sonic.Unmarshal(body, &items); err != nil {
		return decodedDay{status: dayMissing, err: errNotSequence}
	}

	slots := make([]map[string]json.RawMessage, 0, len(items))
	for i, it := range items {
		var obj map[string]json.RawMessage
		if err := sonic.Unmarshal(it, &obj); err != nil {
			return decodedDay{status: dayBroken, err: fmt.Errorf("slot %d: %w", i, err)}
		}
		if obj == nil {
			return decodedDay{status: dayBroken, err: fmt.Errorf("slot %d: %w", i, errNullSlot)}
		}
		slots = append(slots, obj)
	}
	return decodedDay{status: dayOK, slots: slots}
}

// referenceSlotCount is the length of the richest valid day.
func referenceSlotCount(days []decodedDay) int {
	n := 0
	for _, d := range days {
		if d.status == dayOK && len(d.slots) > n {
			n = len(d.slots)
		}
	}
	if n == 0 {
		return m.FallbackSlotCount
	}
	return n
}

func slotLabels(days []decodedDay, count int) []string {
	labels := make([]string, count)
	for i := 0; i < count; i++ {
		for _, d := range days {
			if d.status != dayOK || i >= len(d.slots) {
				continue
			}
			rawTime, ok := d.slots[i]["time"]
			if !ok {
				continue
			}
			var t string
			if err := sonic.Unmarshal(rawTime, &t); err == nil && t != "" {
				labels[i] = t
				break
			}
		}
		if labels[i] != "" {
			continue
		}
		if i < len(m.DefaultSlotLabels) {
			labels[i] = m.DefaultSlotLabels[i]
		} else {
			labels[i] = fmt.Sprintf("Slot %d", i+1)
		}
	}
	return labels
}

func placeholderRow(day m.Day, labels []string, marker m.EmptyMarker) m.DaySchedule {
	row := m.DaySchedule{Day: day, Slots: make([]m.Slot, len(labels)), Degraded: true}
	for i, label := range labels {
		row.Slots[i] = m.EmptySlot(i, label, marker)
	}
	return row
}

func buildRow(day m.Day, slots []map[string]json.RawMessage, labels []string, numBatches int) (m.DaySchedule, error) {
	row := m.DaySchedule{Day: day, Slots: make([]m.Slot, len(labels))}
	for i, label := range labels {
		if i >= len(slots) {
			row.Slots[i] = m.EmptySlot(i, label, m.MarkerNoData)
			continue
		}
		s, err := classify(i, label, slots[i], numBatches)
		if err != nil {
			return m.DaySchedule{}, fmt.Errorf("slot %d: %w", i, err)
		}
		row.Slots[i] = s
	}
	return row, nil
}

func classify(index int, label string, slot map[string]json.RawMessage, numBatches int) (m.Slot, error) {
	whole, present, err := payload(slot, "whole_class")
	if err != nil {
		return m.Slot{}, err
	}
	if !present {
		return m.EmptySlot(index, label, m.MarkerFree), nil
	}

	switch whole.Type {
	case m.WireBreak:
		return m.Slot{Index: index, Label: label, Kind: m.SlotBreak}, nil

	case m.WireTheory:
		a := canonical(whole.Assignment())
		return m.Slot{Index: index, Label: label, Kind: m.SlotTheory, Theory: &a}, nil

	case m.WireLab:
		out := m.Slot{Index: index, Label: label, Kind: m.SlotLab}
		for b := 1; b <= numBatches; b++ {
			p, ok, err := payload(slot, fmt.Sprintf("batch_%d", b))
			if err != nil {
				return m.Slot{}, err
			}
			if !ok || p.Type != m.WireBatchLab {
				continue
			}
			out.Batches = append(out.Batches, m.BatchAssignment{Batch: b, Assignment: canonical(p.Assignment())})
		}
		return out, nil
	}

	return m.EmptySlot(index, label, m.MarkerFree), nil
}

// payload decodes slot[key]; a null or absent key is reported as not present.
func payload(slot map[string]json.RawMessage, key string) (m.WirePayload, bool, error) {
	raw, ok := slot[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return m.WirePayload{}, false, nil
	}
	var p m.WirePayload
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return m.WirePayload{}, false, fmt.Errorf("%s: %w", key, err)
	}
	return p, true, nil
}

// canonical rewrites the faculty with m.CanonicalFaculty so visually equal
// names share one facet and the filter input matches the button label.
func canonical(a m.Assignment) m.Assignment {
	if a.Faculty != nil {
		f := m.CanonicalFaculty(*a.Faculty)
		a.Faculty = &f
	}
	return a
}
