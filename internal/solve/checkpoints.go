package solve

// CheckpointStride is the spacing of hint checkpoints along the solution.
// It matches the full hint window, so consecutive hints tile the path.
const CheckpointStride = 20

// Checkpoints places hint anchors along a solution of the given length:
// one every CheckpointStride steps plus one at the final step, always
// within [1, pathLen] and strictly increasing.
func Checkpoints(pathLen int) []int {
	if pathLen < 1 {
		return nil
	}
	var cps []int
	for at := CheckpointStride; at < pathLen; at += CheckpointStride {
		cps = append(cps, at)
	}
	return append(cps, pathLen)
}

// NextCheckpoint returns the first checkpoint strictly beyond progress,
// falling back to the last one. This anchors how far a hint may reveal.
func NextCheckpoint(cps []int, progress int) int {
	for _, cp := range cps {
		if cp > progress {
			return cp
		}
	}
	if len(cps) == 0 {
		return 0
	}
	return cps[len(cps)-1]
}
