package engine

import (
	"math/bits"

	. "github.com/shogihack/naitou/common"
)

// The opening book consists of per-formation branch tables and move
// sequences. A branch entry reacts to a HUM piece standing on a given
// square, either with a fixed reply or by switching the formation. A
// moves entry is simply the next move of the formation's plan.

// Formation is the COM opening plan currently in effect.
type Formation int

const (
	FormationNakabisha Formation = iota
	FormationSikenbisha
	FormationKakugawari
	FormationSujichigai
	FormationHumHishaochi
	FormationHumNimaiochi
	FormationComHishaochi
	FormationComNimaiochi
	FormationNothing // out of book
)

var formationNames = [...]string{
	"中飛車",
	"四間飛車",
	"角換わり",
	"筋違い角",
	"HUM 飛車落ち",
	"HUM 二枚落ち",
	"COM 飛車落ち",
	"COM 二枚落ち",
	"(なし)",
}

func (f Formation) String() string {
	return formationNames[f]
}

func (f Formation) IsNothing() bool {
	return f == FormationNothing
}

// FormationFromHandicap returns the initial formation for a handicap.
func FormationFromHandicap(handicap Handicap) Formation {
	switch handicap {
	case HumSenteSikenbisha, ComSenteSikenbisha:
		return FormationSikenbisha
	case HumSenteNakabisha, ComSenteNakabisha:
		return FormationNakabisha
	case HumHishaochi:
		return FormationHumHishaochi
	case HumNimaiochi:
		return FormationHumNimaiochi
	case ComHishaochi:
		return FormationComHishaochi
	case ComNimaiochi:
		return FormationComNimaiochi
	}
	panic("invalid handicap")
}

func (f Formation) bookBranch() []bookBranchEntry {
	return bookBranches[f]
}

func (f Formation) bookMoves() []bookMovesEntry {
	return bookMoves[f]
}

// bookBranchEntry is one branch table entry. If change is false: when a
// HUM piece pk stands on sq, reply with the walk src->dst (never a
// promotion). If change is true: when a HUM piece pk stands on sq and
// the progress ply is at most ply, switch to formation.
type bookBranchEntry struct {
	sq        int
	pk        PieceKind
	src       int
	dst       int
	change    bool
	formation Formation
	ply       int
}

func brMove(sq int, pk PieceKind, src, dst int) bookBranchEntry {
	return bookBranchEntry{sq: sq, pk: pk, src: src, dst: dst}
}

func brChange(sq int, pk PieceKind, formation Formation, ply int) bookBranchEntry {
	return bookBranchEntry{sq: sq, pk: pk, change: true, formation: formation, ply: ply}
}

// bookMovesEntry is a walk src->dst of the formation's plan (never a
// promotion).
type bookMovesEntry struct {
	src int
	dst int
}

// BookState tracks the current formation and which book entries are
// still unused.
type BookState struct {
	formation        Formation
	maskUnusedBranch uint32 // bit i set: branch entry i unused
	maskUnusedMoves  uint32 // bit i set: moves entry i unused
}

// NewBookState creates a BookState for the given initial formation,
// which must not be FormationNothing.
func NewBookState(formation Formation) BookState {
	var s BookState
	s.changeFormation(formation)
	return s
}

func (s *BookState) Formation() Formation {
	return s.formation
}

func (s *BookState) changeFormation(formation Formation) {
	s.formation = formation
	s.maskUnusedBranch = uint32(1)<<len(formation.bookBranch()) - 1
	s.maskUnusedMoves = uint32(1)<<len(formation.bookMoves()) - 1
}

// NextMove returns the next book move, or false once the book is
// exhausted (the formation becomes FormationNothing). The move is not
// checked for legality or material loss; the caller handles that.
//
// A used entry keeps its unused flag while progressPly is 0, so when
// COM moves first its very first book move does not consume the entry.
func (s *BookState) NextMove(pos *Position, progressPly int) (Move, bool) {
bookBranch:
	for {
		branch := s.formation.bookBranch()
		for m := s.maskUnusedBranch; m != 0; m &= m - 1 {
			i := bits.TrailingZeros32(m)
			e := &branch[i]
			if pos.Board()[e.sq] != MakePiece(HUM, e.pk) {
				continue
			}
			if e.change {
				if progressPly <= e.ply {
					s.changeFormation(e.formation)
					continue bookBranch
				}
				continue
			}
			if progressPly != 0 {
				s.maskUnusedBranch &^= 1 << i
			}
			return NewWalk(e.src, e.dst), true
		}
		break
	}

	if s.maskUnusedMoves != 0 {
		i := bits.TrailingZeros32(s.maskUnusedMoves)
		e := &s.formation.bookMoves()[i]
		if progressPly != 0 {
			s.maskUnusedMoves &^= 1 << i
		}
		return NewWalk(e.src, e.dst), true
	}

	s.formation = FormationNothing
	return MoveNone, false
}

var bookBranches = [...][]bookBranchEntry{
	FormationNakabisha: {
		brChange(SQ22, Bishop, FormationKakugawari, 5),
		brChange(SQ22, Horse, FormationKakugawari, 5),
		brMove(SQ55, Bishop, SQ53, SQ54),
		brMove(SQ46, Bishop, SQ44, SQ45),
		brMove(SQ46, Silver, SQ44, SQ45),
		brMove(SQ26, Silver, SQ41, SQ32),
		brMove(SQ46, Pawn, SQ22, SQ33),
		brMove(SQ96, Pawn, SQ93, SQ94),
		brMove(SQ25, Pawn, SQ22, SQ33),
		brMove(SQ35, Silver, SQ44, SQ45),
	},
	FormationSikenbisha: {
		brChange(SQ22, Bishop, FormationKakugawari, 5),
		brChange(SQ22, Horse, FormationKakugawari, 5),
		brMove(SQ55, Bishop, SQ53, SQ54),
		brMove(SQ46, Bishop, SQ44, SQ45),
		brMove(SQ46, Silver, SQ44, SQ45),
		brMove(SQ26, Silver, SQ42, SQ32),
		brMove(SQ46, Pawn, SQ22, SQ33),
		brMove(SQ96, Pawn, SQ93, SQ94),
		brMove(SQ25, Pawn, SQ22, SQ33),
		brMove(SQ35, Silver, SQ44, SQ45),
	},
	FormationKakugawari: {
		brChange(SQ45, Bishop, FormationSujichigai, 5),
		brChange(SQ56, Bishop, FormationSujichigai, 5),
		brMove(SQ96, Pawn, SQ93, SQ94),
	},
	FormationSujichigai: {
		brMove(SQ96, Pawn, SQ93, SQ94),
		brMove(SQ16, Pawn, SQ13, SQ14),
	},
	FormationHumHishaochi: {
		brMove(SQ16, Pawn, SQ13, SQ14),
		brMove(SQ96, Pawn, SQ93, SQ94),
		brMove(SQ22, Bishop, SQ31, SQ22),
		brMove(SQ22, Horse, SQ31, SQ22),
	},
	FormationHumNimaiochi: {
		brMove(SQ56, Pawn, SQ53, SQ54),
	},
	FormationComHishaochi: {
		brMove(SQ25, Pawn, SQ22, SQ33),
		brMove(SQ96, Pawn, SQ93, SQ94),
		brMove(SQ16, Pawn, SQ13, SQ14),
	},
	FormationComNimaiochi: {
		brMove(SQ16, Pawn, SQ13, SQ14),
		brMove(SQ96, Pawn, SQ93, SQ94),
		brMove(SQ56, Pawn, SQ53, SQ54),
		brMove(SQ35, Pawn, SQ31, SQ22),
	},
	FormationNothing: nil,
}

var bookMoves = [...][]bookMovesEntry{
	FormationNakabisha: {
		{SQ33, SQ34},
		{SQ43, SQ44},
		{SQ31, SQ42},
		{SQ82, SQ52},
		{SQ42, SQ43},
		{SQ51, SQ62},
		{SQ62, SQ72},
		{SQ71, SQ62},
		{SQ22, SQ33},
		{SQ53, SQ54},
		{SQ63, SQ64},
		{SQ62, SQ63},
		{SQ61, SQ62},
		{SQ41, SQ42},
		{SQ42, SQ53},
		{SQ52, SQ22},
		{SQ23, SQ24},
		{SQ24, SQ25},
		{SQ44, SQ45},
	},
	FormationSikenbisha: {
		{SQ33, SQ34},
		{SQ43, SQ44},
		{SQ31, SQ32},
		{SQ82, SQ42},
		{SQ32, SQ43},
		{SQ51, SQ62},
		{SQ62, SQ72},
		{SQ72, SQ82},
		{SQ71, SQ72},
		{SQ41, SQ52},
		{SQ22, SQ33},
		{SQ63, SQ64},
		{SQ52, SQ63},
		{SQ73, SQ74},
		{SQ42, SQ41},
		{SQ93, SQ94},
		{SQ44, SQ45},
	},
	FormationKakugawari: {
		{SQ33, SQ34},
		{SQ31, SQ22},
		{SQ22, SQ33},
		{SQ71, SQ62},
		{SQ83, SQ84},
		{SQ41, SQ32},
		{SQ84, SQ85},
		{SQ61, SQ52},
		{SQ51, SQ41},
		{SQ63, SQ64},
		{SQ62, SQ63},
		{SQ73, SQ74},
		{SQ41, SQ31},
		{SQ31, SQ22},
		{SQ43, SQ44},
		{SQ52, SQ43},
		{SQ93, SQ94},
		{SQ81, SQ73},
		{SQ64, SQ65},
		{SQ63, SQ54},
	},
	FormationSujichigai: {
		{SQ33, SQ34},
		{SQ31, SQ22},
		{SQ61, SQ52},
		{SQ41, SQ32},
		{SQ22, SQ33},
		{SQ71, SQ62},
		{SQ83, SQ84},
		{SQ84, SQ85},
		{SQ51, SQ41},
		{SQ63, SQ64},
		{SQ62, SQ63},
		{SQ53, SQ54},
		{SQ73, SQ74},
		{SQ81, SQ73},
		{SQ93, SQ94},
		{SQ13, SQ14},
		{SQ33, SQ44},
		{SQ64, SQ65},
	},
	FormationHumHishaochi: {
		{SQ33, SQ34},
		{SQ83, SQ84},
		{SQ84, SQ85},
		{SQ41, SQ32},
		{SQ71, SQ62},
		{SQ61, SQ52},
		{SQ51, SQ41},
		{SQ53, SQ54},
		{SQ73, SQ74},
		{SQ31, SQ42},
		{SQ63, SQ64},
		{SQ62, SQ63},
		{SQ81, SQ73},
		{SQ93, SQ94},
		{SQ13, SQ14},
		{SQ22, SQ33},
		{SQ64, SQ65},
	},
	FormationHumNimaiochi: {
		{SQ33, SQ34},
		{SQ63, SQ64},
		{SQ64, SQ65},
		{SQ82, SQ62},
		{SQ73, SQ74},
		{SQ74, SQ75},
		{SQ71, SQ72},
		{SQ72, SQ73},
		{SQ41, SQ32},
		{SQ61, SQ52},
		{SQ51, SQ41},
		{SQ31, SQ42},
		{SQ53, SQ54},
		{SQ73, SQ74},
		{SQ81, SQ73},
		{SQ93, SQ94},
		{SQ13, SQ14},
		{SQ62, SQ61},
		{SQ75, SQ76},
	},
	FormationComHishaochi: {
		{SQ33, SQ34},
		{SQ43, SQ44},
		{SQ41, SQ32},
		{SQ31, SQ42},
		{SQ42, SQ43},
		{SQ51, SQ62},
		{SQ62, SQ72},
		{SQ71, SQ62},
		{SQ53, SQ54},
		{SQ13, SQ14},
		{SQ93, SQ94},
		{SQ63, SQ64},
		{SQ62, SQ63},
		{SQ61, SQ62},
		{SQ73, SQ74},
		{SQ22, SQ33},
	},
	FormationComNimaiochi: {
		{SQ41, SQ32},
		{SQ71, SQ62},
		{SQ53, SQ54},
		{SQ62, SQ53},
		{SQ61, SQ62},
		{SQ63, SQ64},
		{SQ62, SQ63},
		{SQ73, SQ74},
		{SQ51, SQ62},
		{SQ13, SQ14},
		{SQ93, SQ94},
		{SQ81, SQ73},
		{SQ31, SQ42},
		{SQ64, SQ65},
	},
	FormationNothing: nil,
}
