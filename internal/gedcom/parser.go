package gedcom

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/roach88/gedcheck/internal/anomaly"
	"github.com/roach88/gedcheck/internal/model"
)

// Parser interprets tokenized lines against a single record context and
// applies them to a model.Tree.
//
// A Parser is single-use and not safe for concurrent use. Feed it every line
// of one source with ParseLine (or ParseReader), then read the results. The
// tree must not be read by other goroutines until parsing has finished.
type Parser struct {
	tree      *model.Tree
	errors    []*ParseError
	anomalies []anomaly.Anomaly
	logger    *slog.Logger

	// lineNo is the 1-based number of the last line fed to ParseLine.
	lineNo int

	// Record context. See package documentation.
	lastTopLevelTag Tag
	lastID          string
	lastLevel1Tag   Tag
}

// Option configures a Parser.
type Option func(p *Parser)

// WithLogger sets the structured logger. Parse errors are logged at Debug.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a parser with an empty tree.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		tree:   model.NewTree(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result bundles everything a parse produced.
type Result struct {
	Tree      *model.Tree
	Errors    []*ParseError
	Anomalies []anomaly.Anomaly
}

// lineHandler applies a level-1 line to the current record.
type lineHandler func(p *Parser, arg string) *ParseError

// dateHandler applies a parsed level-2 DATE to the current record.
type dateHandler func(p *Parser, d time.Time) *ParseError

// level1Handlers dispatches level-1 tags. Tags that only open a sub-record
// for a following DATE line (BIRT, DEAT, MARR, DIV) are absent, as is NOTE.
var level1Handlers = map[Tag]lineHandler{
	TagName:     (*Parser).setName,
	TagSex:      (*Parser).setSex,
	TagChildOf:  (*Parser).addChildOf,
	TagSpouseOf: (*Parser).addSpouseOf,
	TagHusband:  (*Parser).setHusband,
	TagWife:     (*Parser).setWife,
	TagChild:    (*Parser).addChild,
}

// dateHandlers dispatches level-2 DATE lines on the last level-1 tag.
var dateHandlers = map[Tag]dateHandler{
	TagBirth:    (*Parser).setBirth,
	TagDeath:    (*Parser).setDeath,
	TagMarriage: (*Parser).setMarried,
	TagDivorce:  (*Parser).setDivorced,
}

// ParseLine tokenizes and applies one line. Failures are recorded in Errors;
// ParseLine never stops the parse. Blank lines are skipped.
func (p *Parser) ParseLine(text string) {
	p.lineNo++
	if strings.TrimSpace(text) == "" {
		return
	}

	line, err := Tokenize(text)
	if err != nil {
		if text[0] == '0' {
			p.closeRecord()
		}
		p.record(text, "", newParseError(ErrCodeMalformedLine, err.Error(), err))
		return
	}

	tag, ok := ParseTag(line.Tag)
	if !ok {
		if line.Level == 0 {
			p.closeRecord()
		}
		p.record(text, line.Tag, newParseError(ErrCodeUnrecognizedTag, fmt.Sprintf("unrecognized tag %q", line.Tag), nil))
		return
	}

	var perr *ParseError
	switch line.Level {
	case 0:
		perr = p.openRecord(tag, line.Arg)
	case 1:
		perr = p.applyLevel1(tag, line.Arg)
	case 2:
		perr = p.applyLevel2(tag, line.Arg)
	default:
		// No semantics beyond level 2.
	}
	if perr != nil {
		p.record(text, line.Tag, perr)
	}
}

// record stamps the line position onto perr and appends it.
func (p *Parser) record(text, tag string, perr *ParseError) {
	perr.Line = p.lineNo
	perr.Text = text
	perr.Tag = tag
	p.errors = append(p.errors, perr)
	p.logger.Debug("line rejected",
		slog.Int("line", perr.Line),
		slog.String("code", string(perr.Code)),
		slog.String("tag", tag),
		slog.String("message", perr.Message),
	)
}

// closeRecord clears the record context. Sub-lines that follow report
// MISSING_CONTEXT until the next recognized level-0 record.
func (p *Parser) closeRecord() {
	p.lastTopLevelTag = TagInvalid
	p.lastID = ""
	p.lastLevel1Tag = TagInvalid
}

// openRecord handles a level-0 line. The record context is replaced even when
// the entity cannot be created, so that its sub-lines are not applied to the
// previous record.
func (p *Parser) openRecord(tag Tag, id string) *ParseError {
	p.lastTopLevelTag = tag
	p.lastID = id
	p.lastLevel1Tag = TagInvalid

	switch tag {
	case TagIndividual:
		ind, err := model.NewIndividual(id)
		if err != nil {
			return newParseError(ErrCodeEmptyID, "INDI record has no id", err)
		}
		p.tree.PutIndividual(ind)
	case TagFamily:
		fam, err := model.NewFamily(id)
		if err != nil {
			return newParseError(ErrCodeEmptyID, "FAM record has no id", err)
		}
		p.tree.PutFamily(fam)
	}
	return nil
}

func (p *Parser) applyLevel1(tag Tag, arg string) *ParseError {
	p.lastLevel1Tag = tag
	handler, ok := level1Handlers[tag]
	if !ok {
		return nil
	}
	return handler(p, arg)
}

func (p *Parser) applyLevel2(tag Tag, arg string) *ParseError {
	if tag != TagDate {
		return nil
	}
	d, err := ParseDate(arg)
	if err != nil {
		return wrapParseError(ErrCodeDateParse, err)
	}
	handler, ok := dateHandlers[p.lastLevel1Tag]
	if !ok {
		return nil
	}
	return handler(p, d)
}

// currentIndividual returns the individual named by the record context.
func (p *Parser) currentIndividual() (*model.Individual, *ParseError) {
	if p.lastTopLevelTag == TagIndividual {
		if ind, ok := p.tree.Individual(p.lastID); ok {
			return ind, nil
		}
	}
	return nil, p.missingContext(TagIndividual)
}

// currentFamily returns the family named by the record context.
func (p *Parser) currentFamily() (*model.Family, *ParseError) {
	if p.lastTopLevelTag == TagFamily {
		if fam, ok := p.tree.Family(p.lastID); ok {
			return fam, nil
		}
	}
	return nil, p.missingContext(TagFamily)
}

func (p *Parser) missingContext(want Tag) *ParseError {
	if p.lastTopLevelTag == TagInvalid {
		return newParseError(ErrCodeMissingContext, fmt.Sprintf("no %s record is open", want), nil)
	}
	return newParseError(ErrCodeMissingContext,
		fmt.Sprintf("no %s record is open (current record is %s %q)", want, p.lastTopLevelTag, p.lastID), nil)
}

// resolve looks up a referenced individual such as "@I1@".
func (p *Parser) resolve(arg string) (*model.Individual, *ParseError) {
	id := parseRef(arg)
	if id == "" {
		return nil, newParseError(ErrCodeInvalidValue, "missing individual reference", nil)
	}
	ind, ok := p.tree.Individual(id)
	if !ok {
		return nil, newParseError(ErrCodeUnresolvedRef, fmt.Sprintf("individual %q is not declared", id), nil)
	}
	return ind, nil
}

func (p *Parser) setName(arg string) *ParseError {
	ind, perr := p.currentIndividual()
	if perr != nil {
		return perr
	}
	ind.SetName(arg)
	return nil
}

func (p *Parser) setSex(arg string) *ParseError {
	ind, perr := p.currentIndividual()
	if perr != nil {
		return perr
	}
	code := strings.TrimSpace(arg)
	if code == "" {
		return newParseError(ErrCodeInvalidValue, "SEX has no value", nil)
	}
	ind.SetSex(model.ParseSex(code))
	return nil
}

func (p *Parser) addChildOf(arg string) *ParseError {
	ind, perr := p.currentIndividual()
	if perr != nil {
		return perr
	}
	id := parseRef(arg)
	if id == "" {
		return newParseError(ErrCodeInvalidValue, "FAMC has no family reference", nil)
	}
	ind.AddChildOfFamily(id)
	return nil
}

func (p *Parser) addSpouseOf(arg string) *ParseError {
	ind, perr := p.currentIndividual()
	if perr != nil {
		return perr
	}
	id := parseRef(arg)
	if id == "" {
		return newParseError(ErrCodeInvalidValue, "FAMS has no family reference", nil)
	}
	ind.AddSpouseOfFamily(id)
	return nil
}

func (p *Parser) setHusband(arg string) *ParseError {
	return p.assign(arg, (*model.Family).SetHusband)
}

func (p *Parser) setWife(arg string) *ParseError {
	return p.assign(arg, (*model.Family).SetWife)
}

func (p *Parser) addChild(arg string) *ParseError {
	return p.assign(arg, (*model.Family).AddChild)
}

// assign resolves the referenced individual and applies mutate to the current
// family. A mutator rejection leaves the family unchanged.
func (p *Parser) assign(arg string, mutate func(*model.Family, *model.Individual) error) *ParseError {
	fam, perr := p.currentFamily()
	if perr != nil {
		return perr
	}
	ind, perr := p.resolve(arg)
	if perr != nil {
		return perr
	}
	if err := mutate(fam, ind); err != nil {
		return wrapParseError(ErrCodeInvariant, err)
	}
	return nil
}

func (p *Parser) setBirth(d time.Time) *ParseError {
	ind, perr := p.currentIndividual()
	if perr != nil {
		return perr
	}
	ind.SetBirthDate(d)
	return nil
}

func (p *Parser) setDeath(d time.Time) *ParseError {
	ind, perr := p.currentIndividual()
	if perr != nil {
		return perr
	}
	ind.SetDeathDate(d)
	return nil
}

func (p *Parser) setMarried(d time.Time) *ParseError {
	fam, perr := p.currentFamily()
	if perr != nil {
		return perr
	}
	fam.SetMarriedDate(d)
	return nil
}

func (p *Parser) setDivorced(d time.Time) *ParseError {
	fam, perr := p.currentFamily()
	if perr != nil {
		return perr
	}
	fam.SetDivorcedDate(d)
	return nil
}

// DetectAnomalies runs the anomaly detector over the parsed tree and replaces
// the anomaly list with its findings. Call it only after parsing finished.
// Running it again over an unchanged tree yields the same list.
func (p *Parser) DetectAnomalies() []anomaly.Anomaly {
	p.anomalies = anomaly.Detect(p.tree)
	p.logger.Debug("anomaly detection finished", slog.Int("anomalies", len(p.anomalies)))
	return slices.Clone(p.anomalies)
}

// Tree returns the parsed tree.
func (p *Parser) Tree() *model.Tree { return p.tree }

// Individuals returns all parsed individuals ordered by id.
func (p *Parser) Individuals() []*model.Individual { return p.tree.Individuals() }

// Individual looks up a parsed individual by id.
func (p *Parser) Individual(id string) (*model.Individual, bool) { return p.tree.Individual(id) }

// Families returns all parsed families ordered by id.
func (p *Parser) Families() []*model.Family { return p.tree.Families() }

// Family looks up a parsed family by id.
func (p *Parser) Family(id string) (*model.Family, bool) { return p.tree.Family(id) }

// Errors returns the recorded parse errors in encounter order.
func (p *Parser) Errors() []*ParseError { return slices.Clone(p.errors) }

// Anomalies returns the findings of the last DetectAnomalies call.
func (p *Parser) Anomalies() []anomaly.Anomaly { return slices.Clone(p.anomalies) }

// Lines returns the number of lines consumed so far.
func (p *Parser) Lines() int { return p.lineNo }

// Result returns the tree, errors and anomalies.
func (p *Parser) Result() Result {
	return Result{
		Tree:      p.tree,
		Errors:    p.Errors(),
		Anomalies: p.Anomalies(),
	}
}
