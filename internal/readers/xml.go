package readers

import (
	"context"
	"encoding/xml"
	"os"

	"github.com/agentstation/factmap/pkg/errors"
)

// XMLReader reads observation rows from an XML document of the form:
//
//	<observations>
//	    <observation inn="..." field="..." source="..." timestamp="...">
//	        <value>...</value>
//	    </observation>
//	</observations>
type XMLReader struct{}

// NewXMLReader creates an XML reader.
func NewXMLReader() *XMLReader {
	return &XMLReader{}
}

// Extensions returns the extensions this reader supports.
func (r *XMLReader) Extensions() []string {
	return []string{"xml"}
}

// xmlDocument is the root element of an observation file.
type xmlDocument struct {
	XMLName xml.Name `xml:"observations"`
	Rows    []Row    `xml:"observation"`
}

// Read loads all rows from the file at path.
func (r *XMLReader) Read(ctx context.Context, path string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("xml", path, err)
	}
	return doc.Rows, nil
}
