package engine

import (
	"github.com/rs/zerolog"

	. "github.com/shogihack/naitou/common"
)

// The think trace mirrors the engine's decision process step by step so
// that two runs (or a run and an external reference) can be diffed.
// It is disabled by default.

var traceLogger = zerolog.Nop()

// EnableTrace routes the think trace to the given logger.
func EnableTrace(lg zerolog.Logger) {
	traceLogger = lg
}

func DisableTrace() {
	traceLogger = zerolog.Nop()
}

func (ev *RootEvaluation) MarshalZerologObject(e *zerolog.Event) {
	e.Uint8("adv_price", ev.AdvPrice).
		Uint8("disadv_price", ev.DisadvPrice).
		Uint8("power_hum", ev.PowerHum).
		Uint8("power_com", ev.PowerCom).
		Uint8("rbp_com", ev.RbpCom)
}

func (ev *LeafEvaluation) MarshalZerologObject(e *zerolog.Event) {
	e.Uint8("capture_price", ev.CapturePrice).
		Uint8("adv_price", ev.AdvPrice).
		Str("adv_sq", traceSquare(ev.AdvSq)).
		Uint8("disadv_price", ev.DisadvPrice).
		Str("disadv_sq", traceSquare(ev.DisadvSq)).
		Uint8("score_posi", ev.ScorePosi).
		Uint8("score_nega", ev.ScoreNega).
		Uint8("hum_king_threat_around25", ev.HumKingThreatAround25).
		Uint8("com_king_safety_around25", ev.ComKingSafetyAround25).
		Uint8("com_king_threat_around25", ev.ComKingThreatAround25).
		Uint8("com_king_threat_around8", ev.ComKingThreatAround8).
		Uint8("com_king_choke_count_around8", ev.ComKingChokeCountAround8).
		Uint8("src_to_com_king", ev.SrcToComKing).
		Uint8("dst_to_hum_king", ev.DstToHumKing).
		Bool("hum_hanging", ev.HumHanging).
		Uint8("com_promo_count", ev.ComPromoCount).
		Uint8("com_loose_count", ev.ComLooseCount).
		Bool("hum_is_checkmated", ev.HumIsCheckmated)
}

func traceSquare(sq int) string {
	if sq == SquareNone {
		return "-"
	}
	return SquareName(sq)
}

func traceThinkStart(ply int) {
	traceLogger.Info().Int("ply", ply).Msg("think start")
}

func traceThinkEnd() {
	traceLogger.Info().Msg("think end")
}

func tracePosition(p *Position) {
	traceLogger.Info().
		Stringer("side_to_move", p.SideToMove()).
		Str("hand_com", p.Hand(COM).String()).
		Str("hand_hum", p.Hand(HUM).String()).
		Msg("\n" + p.Board().String())
	traceLogger.Info().Msg("HUM effects:\n" + p.EffectBoard(HUM).String())
	traceLogger.Info().Msg("COM effects:\n" + p.EffectBoard(COM).String())
}

func traceProgress(ply, level, sub int) {
	traceLogger.Info().
		Int("progress_ply", ply).
		Int("progress_level", level).
		Int("progress_level_sub", sub).
		Msg("progress")
}

func traceFormation(f Formation) {
	traceLogger.Info().Stringer("formation", f).Msg("formation")
}

func traceRootEval(ev *RootEvaluation) {
	traceLogger.Info().Object("eval", ev).Msg("root evaluation")
}

func traceCandStart(mv Move) {
	traceLogger.Info().Stringer("move", mv).Msg("candidate start")
}

func traceCandReject(reason string) {
	traceLogger.Info().Str("reason", reason).Msg("candidate rejected")
}

func traceCandEnd() {
	traceLogger.Info().Msg("candidate end")
}

func traceLeafEval(stage string, ev *LeafEvaluation) {
	traceLogger.Info().Str("stage", stage).Object("eval", ev).Msg("leaf evaluation")
}

func traceRevise(rule string) {
	traceLogger.Info().Str("rule", rule).Msg("revise")
}

func traceCmp(stage string, improved bool) {
	traceLogger.Info().Str("stage", stage).Bool("improved", improved).Msg("compare")
}

func traceHumIsCheckmated() {
	traceLogger.Info().Msg("HUM is checkmated")
}

func traceBest(mv Move, ev *LeafEvaluation) {
	e := traceLogger.Info()
	if mv == MoveNone {
		e.Str("move", "-").Msg("best")
		return
	}
	e.Stringer("move", mv).Object("eval", ev).Msg("best")
}

func traceBookStart() {
	traceLogger.Info().Msg("book start")
}

func traceBookAccept(mv Move) {
	traceLogger.Info().Stringer("move", mv).Msg("book move accepted")
}

func traceResponseMove(mv Move) {
	traceLogger.Info().Stringer("move", mv).Msg("COM move")
}

func traceResponseComWin(mv Move) {
	traceLogger.Info().Stringer("move", mv).Msg("COM win")
}

func traceResponseHumWin() {
	traceLogger.Info().Msg("HUM win")
}

func traceResponseHumSuicide() {
	traceLogger.Info().Msg("HUM suicide")
}
