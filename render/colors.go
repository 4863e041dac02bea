package render

// Palette (Tokyo Night base)
var (
	RgbBackground = RGB{26, 27, 38}
	RgbGround     = RGB{36, 40, 59}
	RgbObstacle   = RGB{86, 95, 137}
	RgbPenaltyMax = RGB{143, 82, 36} // Ground tint at the highest penalty

	RgbOpen     = RGB{42, 110, 70}
	RgbExplored = RGB{150, 50, 60}
	RgbPath     = RGB{224, 175, 104}
	RgbStart    = RGB{122, 162, 247}
	RgbEnd      = RGB{187, 154, 247}

	RgbLookPoint = RGB{255, 255, 255}
	RgbBoundary  = RGB{125, 207, 255}
	RgbAgent     = RGB{158, 206, 106}
	RgbTarget    = RGB{247, 118, 142}

	RgbCostNear = RGB{100, 255, 255}
	RgbCostFar  = RGB{40, 80, 120}
	RgbCostNone = RGB{60, 60, 60}

	RgbStatusBg   = RGB{135, 206, 250}
	RgbStatusText = RGB{0, 0, 0}
	RgbStatusFail = RGB{200, 50, 50}
)

// PenaltyColor shades walkable ground by normalized penalty t in [0, 1]
func PenaltyColor(t float64) RGB {
	return RgbGround.Blend(RgbPenaltyMax, t)
}

// CostColor grades cost-to-target arrows: near is bright, far is dim
func CostColor(t float64) RGB {
	return RgbCostFar.Blend(RgbCostNear, 1-t)
}
