package loader

// Format describes a serialization format.
type Format struct {
	Name           string
	Extension      string
	CanSerialize   bool
	CanDeserialize bool
}

func (f Format) String() string { return f.Name }

// CSVFormat is the tabular DOPLER format, comma or semicolon separated.
// Models are only read, never written back.
var CSVFormat = Format{Name: "csv", Extension: ".csv", CanSerialize: false, CanDeserialize: true}
