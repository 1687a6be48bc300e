package compiler

import (
	"sort"

	"github.com/shiwa/flocompile/internal/bufmap"
)

// Group — набор записей буферов, которые должны стать видимыми к одному дедлайну
type Group struct {
	// Deadline — момент, к которому все записи группы завершены (после компенсации может сдвинуться раньше)
	Deadline int64
	// Nominal — исходный дедлайн до компенсации
	Nominal int64
	// Buffers — изменённые буферы по возрастанию индекса
	Buffers []int
	// Values — итоговые значения буферов, параллельно Buffers
	Values []uint16
	// Offset — на сколько тактов вперёд сдвинуть видимый эффект записей группы
	Offset int64
}

// Writes возвращает число записей группы
func (g *Group) Writes() int { return len(g.Buffers) }

// Coalesce сортирует события по времени (устойчиво) и сводит их в группы
// одновременных записей. st.Buffers обновляется по ходу.
// Пересекающиеся по маске разные значения одного буфера в группе — ConflictError;
// запись, не меняющая биты буфера, отбрасывается с диагностикой RedundantWrite.
func Coalesce(events []ChangeEvent, st *State) ([]Group, []Diagnostic, error) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Deadline < events[j].Deadline })

	var (
		groups   []Group
		diags    []Diagnostic
		assigned [bufmap.NumBuffers]uint16
		changed  [bufmap.NumBuffers]bool
	)
	if len(events) == 0 {
		return nil, nil, nil
	}
	current := events[0].Deadline

	closeGroup := func(deadline int64) {
		g := Group{Deadline: deadline, Nominal: deadline}
		for b := range changed {
			if changed[b] {
				g.Buffers = append(g.Buffers, b)
				g.Values = append(g.Values, st.Buffers[b])
			}
		}
		if len(g.Buffers) > 0 {
			groups = append(groups, g)
		}
		assigned = [bufmap.NumBuffers]uint16{}
		changed = [bufmap.NumBuffers]bool{}
	}

	for _, ev := range events {
		if ev.Deadline != current {
			closeGroup(current)
			current = ev.Deadline
		}
		diff := (st.Buffers[ev.Buffer] ^ ev.Value) & ev.Mask
		if diff&assigned[ev.Buffer] != 0 {
			return nil, nil, &ConflictError{
				Deadline: ev.Deadline,
				Buffer:   ev.Buffer,
				Value:    ev.Value,
				Mask:     ev.Mask,
				Assigned: assigned[ev.Buffer],
			}
		}
		if diff == 0 {
			diags = append(diags, Diagnostic{
				Kind:     RedundantWrite,
				Deadline: ev.Deadline,
				Buffer:   ev.Buffer,
				Value:    ev.Value,
				Mask:     ev.Mask,
			})
			continue
		}
		st.Buffers[ev.Buffer] = st.Buffers[ev.Buffer]&^ev.Mask | ev.Value&ev.Mask
		assigned[ev.Buffer] |= ev.Mask
		changed[ev.Buffer] = true
	}
	closeGroup(current)
	return groups, diags, nil
}
