package exporter

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/roguewave/hufcheck/pkg/types"
)

// Gather collects reports into metric families sorted by name.
func Gather(reports ...types.Report) ([]*dto.MetricFamily, error) {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewCollector(reports...)); err != nil {
		return nil, fmt.Errorf("exporter: register: %w", err)
	}
	mfs, err := reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("exporter: gather: %w", err)
	}
	return mfs, nil
}

// WriteText writes reports to w in the Prometheus text exposition format.
func WriteText(w io.Writer, reports ...types.Report) error {
	mfs, err := Gather(reports...)
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("exporter: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfile atomically replaces path with the exposition of reports.
func WriteTextfile(path string, reports ...types.Report) error {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewCollector(reports...)); err != nil {
		return fmt.Errorf("exporter: register: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("exporter: write textfile: %w", err)
	}
	return nil
}
