package export

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/camlock/internal/storage"
)

// Document is the JSON form of an archived run.
type Document struct {
	Run     storage.RunMetadata `json:"run"`
	Samples []Row               `json:"samples"`
}

// Row is one sample. Mu is null where no finite coefficient exists.
type Row struct {
	Theta   float64  `json:"theta"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Support float64  `json:"support"`
	Mu      *float64 `json:"mu"`
}

func NewDocument(meta *storage.RunMetadata, samples []storage.Sample) Document {
	doc := Document{Run: *meta, Samples: make([]Row, len(samples))}
	for i, s := range samples {
		row := Row{Theta: s.Theta, X: s.X, Y: s.Y, Support: s.Support}
		if !math.IsNaN(s.Mu) && !math.IsInf(s.Mu, 0) {
			mu := s.Mu
			row.Mu = &mu
		}
		doc.Samples[i] = row
	}
	return doc
}

func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
