// Package gedcom turns GEDCOM-style lines into mutations on a model.Tree.
//
// A line has the shape
//
//	<level> <token> [<rest>]
//
// where level is a single digit. On level-0 lines the cross-reference id
// comes before the tag ("0 @I1@ INDI") and the tag is everything after the
// id; on deeper lines the tag comes first ("1 NAME John /Doe/").
//
// # Record Context
//
// Nesting is encoded only by the level digit. The Parser keeps a single
// record context made of three fields:
//   - the tag of the most recent level-0 record (INDI, FAM, ...)
//   - the id of that record
//   - the most recent level-1 tag (used to route level-2 DATE lines)
//
// Level-1 lines always apply to the most recently opened level-0 record and
// level-2 DATE lines always apply to the most recent level-1 tag. There is no
// record stack: nested or out-of-order records are not supported.
//
// Every level-0 line ends the previous record. A level-0 line with an
// unrecognized tag (SUBM, "INDI junk") or no tag at all clears the context,
// so its sub-lines report MISSING_CONTEXT instead of landing on the record
// before it.
//
// # Recognized Tags
//
// INDI, NAME, SEX, BIRT, DEAT, FAMC, FAMS, FAM, MARR, HUSB, WIFE, CHIL, DIV,
// DATE, TRLR and NOTE. Any other tag is recorded as UNRECOGNIZED_TAG and the
// line is skipped.
//
// # Error Recovery
//
// No line aborts a parse. Malformed lines, unknown tags, bad dates,
// unresolved references and rejected model mutations are each recorded as a
// *ParseError and parsing continues with the next line. Callers inspect
// Parser.Errors once the input is consumed.
//
// # Forward References
//
// HUSB, WIFE and CHIL must name an individual that was declared earlier in
// the input. A reference to an undeclared id is recorded as
// UNRESOLVED_REFERENCE and the family is left unchanged. FAMC and FAMS only
// store family ids and are never resolved.
package gedcom
