package scscn

import (
	"strings"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// Condition is the hydrologic condition (vegetation density and
// treatment) used by the TR-55 tables.
type Condition string

const (
	ConditionPoor Condition = "poor"
	ConditionFair Condition = "fair"
	ConditionGood Condition = "good"
	conditionNone Condition = ""
)

// LandCover names a TR-55 land cover class.
type LandCover string

const (
	CoverFallow            LandCover = "fallow"
	CoverRowCrops          LandCover = "row_crops"
	CoverSmallGrain        LandCover = "small_grain"
	CoverPasture           LandCover = "pasture"
	CoverMeadow            LandCover = "meadow"
	CoverBrush             LandCover = "brush"
	CoverForest            LandCover = "forest"
	CoverHerbaceous        LandCover = "herbaceous"
	CoverFarmstead         LandCover = "farmstead"
	CoverResidentialLow    LandCover = "residential_low"    // 1-2 acre lots, 12-20% impervious
	CoverResidentialMedium LandCover = "residential_medium" // 1/4-1/2 acre, 25-38% impervious
	CoverResidentialHigh   LandCover = "residential_high"   // 1/8 acre or less, 65% impervious
	CoverCommercial        LandCover = "commercial"         // 85% impervious
	CoverIndustrial        LandCover = "industrial"         // 72% impervious
	CoverOpenSpace         LandCover = "open_space"
	CoverPaved             LandCover = "paved"
	CoverGravel            LandCover = "gravel"
	CoverDirt              LandCover = "dirt"
	CoverWater             LandCover = "water"
)

type cnRow struct {
	cover     LandCover
	condition Condition
	// CN by hydrologic soil group A, B, C, D
	a, b, c, d int
}

// TR-55 curve numbers (USDA-NRCS, Urban Hydrology for Small
// Watersheds; NEH Part 630 Chapter 9). Immutable after init.
var cnTable = []cnRow{
	{CoverFallow, conditionNone, 77, 86, 91, 94},
	{CoverRowCrops, ConditionPoor, 72, 81, 88, 91},
	{CoverRowCrops, ConditionFair, 69, 79, 86, 90},
	{CoverRowCrops, ConditionGood, 67, 78, 85, 89},
	{CoverSmallGrain, ConditionPoor, 65, 76, 84, 88},
	{CoverSmallGrain, ConditionFair, 64, 75, 83, 87},
	{CoverSmallGrain, ConditionGood, 63, 75, 83, 87},
	{CoverPasture, ConditionPoor, 68, 79, 86, 89},
	{CoverPasture, ConditionFair, 49, 69, 79, 84},
	{CoverPasture, ConditionGood, 39, 61, 74, 80},
	{CoverMeadow, conditionNone, 30, 58, 71, 78},
	{CoverBrush, ConditionPoor, 48, 67, 77, 83},
	{CoverBrush, ConditionFair, 35, 56, 70, 77},
	{CoverBrush, ConditionGood, 30, 48, 65, 73},
	{CoverForest, ConditionPoor, 45, 66, 77, 83},
	{CoverForest, ConditionFair, 36, 60, 73, 79},
	{CoverForest, ConditionGood, 30, 55, 70, 77},
	{CoverHerbaceous, ConditionPoor, 68, 79, 86, 89},
	{CoverHerbaceous, ConditionFair, 49, 69, 79, 84},
	{CoverHerbaceous, ConditionGood, 39, 61, 74, 80},
	{CoverFarmstead, conditionNone, 59, 74, 82, 86},
	{CoverResidentialLow, conditionNone, 46, 65, 77, 82},
	{CoverResidentialMedium, conditionNone, 57, 72, 81, 86},
	{CoverResidentialHigh, conditionNone, 77, 85, 90, 92},
	{CoverCommercial, conditionNone, 89, 92, 94, 95},
	{CoverIndustrial, conditionNone, 81, 88, 91, 93},
	{CoverOpenSpace, ConditionPoor, 68, 79, 86, 89},
	{CoverOpenSpace, ConditionFair, 49, 69, 79, 84},
	{CoverOpenSpace, ConditionGood, 39, 61, 74, 80},
	{CoverPaved, conditionNone, 98, 98, 98, 98},
	{CoverGravel, conditionNone, 76, 85, 89, 91},
	{CoverDirt, conditionNone, 72, 82, 87, 89},
	{CoverWater, conditionNone, 100, 100, 100, 100},
}

// LookupCN returns the TR-55 curve number for a hydrologic soil group
// ("A".."D"), land cover and optional condition. Covers that vary by
// condition fall back to fair condition when none is given.
func LookupCN(hsg string, cover LandCover, condition Condition) (int, error) {
	hsg = strings.ToUpper(strings.TrimSpace(hsg))
	col := -1
	switch hsg {
	case "A":
		col = 0
	case "B":
		col = 1
	case "C":
		col = 2
	case "D":
		col = 3
	default:
		return 0, hydroerr.InvalidParam("hsg", 0, "must be one of A, B, C, D, got "+hsg)
	}

	cover = LandCover(strings.ToLower(string(cover)))
	condition = Condition(strings.ToLower(string(condition)))

	find := func(cond Condition) (int, bool) {
		for _, row := range cnTable {
			if row.cover == cover && row.condition == cond {
				return [4]int{row.a, row.b, row.c, row.d}[col], true
			}
		}
		return 0, false
	}

	if cn, ok := find(condition); ok {
		return cn, nil
	}
	if condition != conditionNone {
		// The cover may not vary by condition at all.
		if cn, ok := find(conditionNone); ok {
			return cn, nil
		}
	} else if cn, ok := find(ConditionFair); ok {
		return cn, nil
	}
	return 0, hydroerr.InvalidParam("land_cover", 0,
		"no CN tabulated for cover "+string(cover)+" with condition "+string(condition))
}
