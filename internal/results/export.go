package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"
)

// Header is the column order shared by every writer.
var Header = []string{
	"id",
	"time",
	"cornering_speed",
	"turn_radius",
	"centripetal_acceleration",
	"lateral_force",
	"longitudinal_force",
	"tire_slip_angle",
	"front_weight_shift",
	"rear_weight_shift",
}

func (r Row) values() []float64 {
	return []float64{r.Speed, r.Radius, r.Acceleration, r.LateralForce, r.LongitudinalForce, r.SlipAngle, r.FrontShift, r.RearShift}
}

func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{r.ID, r.Time.Format(time.RFC3339Nano)}
		for _, v := range r.values() {
			rec = append(rec, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteTable renders rows for humans with two decimals.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPEED\tRADIUS\tACCEL\tLATERAL\tLONGITUDINAL\tSLIP\tFRONT\tREAR")
	for _, r := range rows {
		fmt.Fprintf(tw, "%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			r.Speed, r.Radius, r.Acceleration, r.LateralForce, r.LongitudinalForce, r.SlipAngle, r.FrontShift, r.RearShift)
	}
	return tw.Flush()
}

func (l *Log) WriteCSV(w io.Writer) error   { return WriteCSV(w, l.Rows()) }
func (l *Log) WriteJSON(w io.Writer) error  { return WriteJSON(w, l.Rows()) }
func (l *Log) WriteTable(w io.Writer) error { return WriteTable(w, l.Rows()) }
