// =============================================================================
// steam2xml - Converter Module
// =============================================================================
//
// This module contains the conversion pipelines. A conversion reads one
// input file, builds the in-memory achievement model and writes it to one
// output file in the other format.
//
// CONVERSION DIRECTIONS:
//   in.xml -> out.vdf : XML parser  -> VDF writer
//   in.vdf -> out.xml : VDF parser  -> XML writer
//
// CONVERSION STATES:
//   Pending -> Parsing -> Serializing -> Done
//   Parsing or Serializing -> Failed on any error
//
// A failure in the parsing phase happens before the output file is opened.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ginjaninja78/steam2xml/internal/config"
	"github.com/ginjaninja78/steam2xml/internal/types"
	"github.com/ginjaninja78/steam2xml/internal/vdf"
	"github.com/ginjaninja78/steam2xml/internal/vdfparser"
	"github.com/ginjaninja78/steam2xml/internal/vdfwriter"
	"github.com/ginjaninja78/steam2xml/internal/xmlparser"
	"github.com/ginjaninja78/steam2xml/internal/xmlwriter"
	"github.com/ginjaninja78/steam2xml/pkg/utils"
	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("steam2xml/converter")

// File extensions that select the conversion direction.
const (
	XMLExtension = ".xml"
	VDFExtension = ".vdf"
)

// =============================================================================
// DIRECTION
// =============================================================================

// Direction is the conversion performed for a pair of files.
type Direction int

const (
	// XMLToVDF converts an achievements XML file into a VDF token file.
	XMLToVDF Direction = iota + 1

	// VDFToXML converts a VDF token file into an achievements XML file.
	VDFToXML
)

func (d Direction) String() string {
	switch d {
	case XMLToVDF:
		return "xml->vdf"
	case VDFToXML:
		return "vdf->xml"
	default:
		return "unknown"
	}
}

// UnsupportedConversionMessage is the usage message for any other extension pair.
const UnsupportedConversionMessage = "Conversions only happen between XML and VDF files!"

// DetectDirection picks the direction from the file extensions.
// Extensions are compared exactly, so ".XML" is not ".xml".
func DetectDirection(inputPath, outputPath string) (Direction, error) {
	in, out := utils.Extension(inputPath), utils.Extension(outputPath)

	switch {
	case in == XMLExtension && out == VDFExtension:
		return XMLToVDF, nil
	case in == VDFExtension && out == XMLExtension:
		return VDFToXML, nil
	}
	return 0, &UsageError{Reason: UnsupportedConversionMessage}
}

// =============================================================================
// STATE
// =============================================================================

// State is the phase a conversion is in.
type State int

const (
	StatePending State = iota
	StateParsing
	StateSerializing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateParsing:
		return "parsing"
	case StateSerializing:
		return "serializing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// transitions lists the states reachable from each state.
var transitions = map[State][]State{
	StatePending:     {StateParsing},
	StateParsing:     {StateSerializing, StateFailed},
	StateSerializing: {StateDone, StateFailed},
}

func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion.
type Result struct {
	// InputFile is the path that was read.
	InputFile string

	// OutputFile is the path that was written.
	OutputFile string

	// Direction is the conversion that ran.
	Direction Direction

	// RunID identifies this conversion in the logs.
	RunID string

	// State is StateDone on success and StateFailed otherwise.
	State State

	// Error is nil on success. It is a *ParseError or *IOError otherwise.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// Success reports whether the conversion finished.
func (r Result) Success() bool {
	return r.State == StateDone
}

// ProcessingStats contains statistics about the conversion.
type ProcessingStats struct {
	// Language is the language tag of the document.
	Language string

	// Achievements is the number of achievement records converted.
	Achievements int

	// BytesWritten is the size of the output.
	BytesWritten int64

	// ProcessingTime is the time taken by the conversion.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Logger is the logging interface used by the converter.
// *logging.ZapEventLogger and the zap sugared loggers satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Converter runs a single conversion. It is not reusable.
type Converter struct {
	inputPath  string
	outputPath string
	direction  Direction
	config     *config.Config
	state      State
	runID      string
	logger     Logger
}

// New creates a Converter for the given files.
//
// PARAMETERS:
//   - inputPath: The file to read.
//   - outputPath: The file to write. An existing file is overwritten.
//   - cfg: The application configuration. nil uses the defaults.
//
// RETURNS:
//   - A new Converter.
//   - A *UsageError if the extensions do not select a direction.
func New(inputPath, outputPath string, cfg *config.Config) (*Converter, error) {
	direction, err := DetectDirection(inputPath, outputPath)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	runID := uuid.New().String()
	return &Converter{
		inputPath:  inputPath,
		outputPath: outputPath,
		direction:  direction,
		config:     cfg,
		state:      StatePending,
		runID:      runID,
		logger:     log.With("run", runID),
	}, nil
}

// Direction returns the conversion direction.
func (c *Converter) Direction() Direction {
	return c.direction
}

// State returns the current state.
func (c *Converter) State() State {
	return c.state
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion.
//
// RETURNS:
//   - A Result describing the outcome. Run never panics on bad input; all
//     failures are reported through Result.Error.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		InputFile:  c.inputPath,
		OutputFile: c.outputPath,
		Direction:  c.direction,
		RunID:      c.runID,
	}

	c.logger.Infof("converting %s -> %s (%s)", c.inputPath, c.outputPath, c.direction)

	// =========================================================================
	// PHASE 1: PARSE
	// =========================================================================

	c.enter(StateParsing)

	doc, err := c.parse()
	if err != nil {
		return c.fail(result, err)
	}

	result.Stats.Language = doc.Language
	result.Stats.Achievements = doc.Achievements.Len()
	c.logger.Debugf("parsed %d achievement(s), language %q", doc.Achievements.Len(), doc.Language)

	// =========================================================================
	// PHASE 2: SERIALIZE
	// =========================================================================

	c.enter(StateSerializing)

	if utils.FileExists(c.outputPath) {
		c.logger.Debugf("overwriting existing file %s", c.outputPath)
	}

	written, err := utils.WriteOutput(c.outputPath, c.config.UseAtomicWrite(), func(w io.Writer) error {
		return c.serialize(w, doc)
	})
	result.Stats.BytesWritten = written
	if err != nil {
		return c.fail(result, &IOError{Op: "write", Path: c.outputPath, Err: err})
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	c.enter(StateDone)
	result.State = c.state
	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Infof("wrote %d achievement(s) to %s (%s) in %s",
		result.Stats.Achievements, c.outputPath,
		humanize.Bytes(uint64(written)), result.Stats.ProcessingTime)

	return result
}

// parse reads the input file in the source format.
func (c *Converter) parse() (*types.Document, error) {
	switch c.direction {
	case XMLToVDF:
		file, err := utils.OpenInput(c.inputPath)
		if err != nil {
			return nil, &IOError{Op: "read", Path: c.inputPath, Err: err}
		}
		defer file.Close()

		doc, err := xmlparser.Parse(file)
		if err != nil {
			return nil, classifyReadError("XML", c.inputPath, err)
		}
		return doc, nil

	case VDFToXML:
		data, err := utils.ReadInput(c.inputPath)
		if err != nil {
			return nil, &IOError{Op: "read", Path: c.inputPath, Err: err}
		}

		doc, err := vdfparser.ParseWithOptions(data, c.vdfParseOptions())
		if err != nil {
			return nil, &ParseError{Format: "VDF", Path: c.inputPath, Err: err}
		}
		return doc, nil
	}

	return nil, fmt.Errorf("unsupported direction %d", c.direction)
}

// serialize writes doc in the target format.
func (c *Converter) serialize(w io.Writer, doc *types.Document) error {
	switch c.direction {
	case XMLToVDF:
		return vdfwriter.Write(w, doc, c.vdfGenerateOptions())
	case VDFToXML:
		return xmlwriter.Write(w, doc, c.xmlGenerateOptions())
	}
	return fmt.Errorf("unsupported direction %d", c.direction)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func (c *Converter) enter(next State) {
	if !canTransition(c.state, next) {
		// Only reachable through a programming error in Run.
		panic(fmt.Sprintf("converter: invalid transition %s -> %s", c.state, next))
	}
	c.logger.Debugf("state %s -> %s", c.state, next)
	c.state = next
}

func (c *Converter) fail(result Result, err error) Result {
	c.logger.Errorf("%s failed: %v", c.state, err)
	c.enter(StateFailed)
	result.State = c.state
	result.Error = err
	return result
}

func (c *Converter) vdfParseOptions() vdfparser.ParseOptions {
	return vdfparser.ParseOptions{
		Decode: vdf.DecodeOptions{
			EscapeSequences: c.config.VDFEscapeSequences(),
		},
		CaseInsensitiveLookup: c.config.VDFCaseInsensitiveLookup(),
	}
}

func (c *Converter) vdfGenerateOptions() vdfwriter.GenerateOptions {
	options := vdfwriter.DefaultGenerateOptions()
	options.Indent = c.config.VDFIndent()
	options.EscapeSequences = c.config.VDFEscapeSequences()
	return options
}

func (c *Converter) xmlGenerateOptions() xmlwriter.GenerateOptions {
	return xmlwriter.GenerateOptions{
		Indent:                c.config.XMLIndent(),
		IncludeXMLDeclaration: c.config.XMLDeclaration(),
	}
}

// Convert is shorthand for New followed by Run. It returns Result.Error.
func Convert(inputPath, outputPath string, cfg *config.Config) (Result, error) {
	conv, err := New(inputPath, outputPath, cfg)
	if err != nil {
		return Result{InputFile: inputPath, OutputFile: outputPath, State: StateFailed, Error: err}, err
	}
	result := conv.Run()
	return result, result.Error
}
