package rfs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// ExportConfig configures the exporting of a trajectory.
type ExportConfig struct {
	Filename  string
	OutputDir string
	Timestamp bool      // append the creation time to the file name
	Epoch     time.Time // ignition time, adds a Julian date column if set
	Env       *Environment
	Site      *Site // adds latitude and longitude columns if set
}

// Path returns the path of the CSV file.
func (c ExportConfig) Path() string {
	name := c.Filename
	if c.Timestamp {
		t := time.Now()
		name = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", name, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return filepath.Join(c.OutputDir, "flight-"+name+".csv")
}

func (c ExportConfig) header() []string {
	hdr := []string{"t"}
	if !c.Epoch.IsZero() {
		hdr = append(hdr, "jd")
	}
	hdr = append(hdr, "x", "y", "z", "vx", "vy", "vz", "ax", "ay", "az", "speed", "airbrakes")
	if c.Env != nil {
		hdr = append(hdr, "mach", "q")
	}
	if c.Site != nil {
		hdr = append(hdr, "lat", "lon")
	}
	return hdr
}

func (c ExportConfig) record(s State) ([]string, error) {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	rec := []string{f(s.T)}
	if !c.Epoch.IsZero() {
		dt := time.Duration(s.T * float64(time.Second))
		rec = append(rec, strconv.FormatFloat(julian.TimeToJD(c.Epoch.Add(dt)), 'f', 8, 64))
	}
	rec = append(rec, f(s.Pos.X), f(s.Pos.Y), f(s.Pos.Z), f(s.Vel.X), f(s.Vel.Y), f(s.Vel.Z),
		f(s.Acc.X), f(s.Acc.Y), f(s.Acc.Z), f(s.Groundspeed()), f(s.Deployment/deg2rad))
	if c.Env != nil {
		mach, err := s.Mach(c.Env)
		if err != nil {
			return nil, err
		}
		q, err := s.DynamicPressure(c.Env)
		if err != nil {
			return nil, err
		}
		rec = append(rec, strconv.FormatFloat(mach, 'f', 5, 64), f(q))
	}
	if c.Site != nil {
		lat, lon := c.Site.Locate(s.Pos)
		rec = append(rec, strconv.FormatFloat(lat, 'f', 7, 64), strconv.FormatFloat(lon, 'f', 7, 64))
	}
	return rec, nil
}

// WriteCSV writes the states received on the channel until it is closed.
// The channel is drained even if writing fails.
func WriteCSV(w io.Writer, conf ExportConfig, states <-chan State) error {
	var err error
	fail := func(e error) {
		if err == nil {
			err = e
		}
	}
	comment := fmt.Sprintf("# Creation date (UTC): %s\n# Positions in m east/north/up of the pad, velocities in m/s, airbrakes in degrees\n", time.Now().UTC())
	if !conf.Epoch.IsZero() {
		comment += fmt.Sprintf("# Ignition (UTC): %s, JD %.6f\n", conf.Epoch.UTC(), julian.TimeToJD(conf.Epoch))
	}
	if _, e := io.WriteString(w, comment); e != nil {
		fail(e)
	}
	cw := csv.NewWriter(w)
	if err == nil {
		fail(cw.Write(conf.header()))
	}
	for s := range states {
		if err != nil {
			continue
		}
		rec, e := conf.record(s)
		if e != nil {
			fail(e)
			continue
		}
		fail(cw.Write(rec))
	}
	cw.Flush()
	fail(cw.Error())
	return err
}

// StreamStates writes the states received on the channel to the CSV file of the configuration.
func StreamStates(conf ExportConfig, states <-chan State) (string, error) {
	path := conf.Path()
	f, err := os.Create(path)
	if err != nil {
		for range states {
		}
		return "", err
	}
	defer f.Close()
	if err := WriteCSV(f, conf, states); err != nil {
		return "", err
	}
	return path, nil
}

// Export writes the trajectory to the CSV file of the configuration and returns its path.
func (tr *Trajectory) Export(conf ExportConfig) (string, error) {
	histChan := make(chan State, 1000)
	type result struct {
		path string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		path, err := StreamStates(conf, histChan)
		done <- result{path, err}
	}()
	for _, s := range tr.States {
		histChan <- s
	}
	close(histChan)
	res := <-done
	return res.path, res.err
}
