package calculate

// DefaultVolumeWindow is the trailing window of VolumeRatio
const DefaultVolumeWindow = 20

// VolumeRatio is the latest volume over the mean of the trailing window (latest included).
// It reads 1 when there is no volume to compare against.
func VolumeRatio(volumes []float64, window int) float64 {
	if len(volumes) == 0 {
		return 1
	}
	avg := SMALast(volumes, window)
	if avg <= 0 {
		return 1
	}
	return volumes[len(volumes)-1] / avg
}
