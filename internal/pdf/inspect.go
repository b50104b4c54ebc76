package pdf

import (
	"bytes"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// Info summarises a PDF file
type Info struct {
	Pages int    `json:"pages"`
	Size  int    `json:"size"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func configuration() *pdfmodel.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	return conf
}

// PageCount returns the number of pages in data
func PageCount(data []byte) (int, error) {
	return api.PageCount(bytes.NewReader(data), configuration())
}

// Inspect validates data and counts its pages. A structurally invalid file
// is reported through Info.Valid and Info.Error; err is set only when the
// page count cannot be read at all.
func Inspect(data []byte) (*Info, error) {
	info := &Info{Size: len(data), Valid: true}

	if err := api.Validate(bytes.NewReader(data), configuration()); err != nil {
		info.Valid = false
		info.Error = err.Error()
	}

	pages, err := PageCount(data)
	if err != nil {
		return info, err
	}
	info.Pages = pages
	return info, nil
}
