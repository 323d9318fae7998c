package gamemath

import "math"

// minSmoothTime keeps omega finite when a zero smoothing time is configured.
const minSmoothTime = 0.0001

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries the spring state between calls and is updated in place.
// maxSpeed caps the rate of change; pass math.Inf(1) for no cap.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, maxSpeed, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime
	decay := springDecay(omega * dt)

	change := current - target
	originalTarget := target
	maxChange := maxSpeed * smoothTime
	change = math.Max(-maxChange, math.Min(change, maxChange))
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay
	output := target + (change+temp)*decay

	// No overshoot past the original target.
	if (originalTarget-current > 0) == (output > originalTarget) {
		output = originalTarget
		*velocity = (output - originalTarget) / dt
	}
	return output
}

// SmoothDamp2 is SmoothDamp over a 2D vector. The overshoot check and the
// speed cap act on the vector as a whole rather than per axis.
func SmoothDamp2(cx, cy, tx, ty float64, vx, vy *float64, smoothTime, maxSpeed, dt float64) (float64, float64) {
	if dt <= 0 {
		return cx, cy
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime
	decay := springDecay(omega * dt)

	changeX := cx - tx
	changeY := cy - ty
	origX, origY := tx, ty

	maxChange := maxSpeed * smoothTime
	if sq := changeX*changeX + changeY*changeY; sq > maxChange*maxChange {
		mag := math.Sqrt(sq)
		changeX = changeX / mag * maxChange
		changeY = changeY / mag * maxChange
	}
	tx = cx - changeX
	ty = cy - changeY

	tempX := (*vx + omega*changeX) * dt
	tempY := (*vy + omega*changeY) * dt
	*vx = (*vx - omega*tempX) * decay
	*vy = (*vy - omega*tempY) * decay

	outX := tx + (changeX+tempX)*decay
	outY := ty + (changeY+tempY)*decay

	toTargetX, toTargetY := origX-cx, origY-cy
	pastX, pastY := outX-origX, outY-origY
	if toTargetX*pastX+toTargetY*pastY > 0 {
		outX, outY = origX, origY
		*vx = (outX - origX) / dt
		*vy = (outY - origY) / dt
	}
	return outX, outY
}

// springDecay approximates exp(-x) with the cubic used by most engines.
func springDecay(x float64) float64 {
	return 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
}
