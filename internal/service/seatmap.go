package service

import (
	"strconv"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// SeatsPerRow is the fixed width of every generated seat map.
const SeatsPerRow = 6

// RowLabel converts a zero-based row index to an alphabetical label:
// 0 -> A, 25 -> Z, 26 -> AA, 27 -> AB.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []byte
	for {
		res = append(res, byte('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// GenerateSeatMap lays out total seats for an event row by row, SeatsPerRow
// to a row, the last row possibly partial.  Zero seats yields an empty map
// (general admission).  The result is deterministic and every label is
// unique within the event.
func GenerateSeatMap(eventID uint64, total int) []model.Seat {
	if total <= 0 {
		return nil
	}
	seats := make([]model.Seat, 0, total)
	for i := 0; i < total; i++ {
		row := RowLabel(i / SeatsPerRow)
		col := i%SeatsPerRow + 1
		seats = append(seats, model.Seat{
			EventID:    eventID,
			RowLabel:   row,
			SeatCol:    col,
			SeatNumber: row + strconv.Itoa(col),
		})
	}
	return seats
}
