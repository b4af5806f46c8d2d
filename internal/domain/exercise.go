package domain

// Exercise is a closed set of exercise labels. Anything outside the set
// is folded into ExerciseOther instead of being rejected.
type Exercise string

const (
	ExerciseBenchPress    Exercise = "ベンチプレス"
	ExerciseSquat         Exercise = "スクワット"
	ExerciseDeadlift      Exercise = "デッドリフト"
	ExerciseShoulderPress Exercise = "ショルダープレス"
	ExerciseLatPulldown   Exercise = "ラットプルダウン"
	ExerciseBentOverRow   Exercise = "ベントオーバーロー"
	ExerciseArmCurl       Exercise = "アームカール"
	ExerciseLegPress      Exercise = "レッグプレス"
	ExerciseOther         Exercise = "その他"
)

// AllExercises holds every Exercise value in canonical display order.
// Grouping and stats output iterate this slice, so the order is significant.
var AllExercises = []Exercise{
	ExerciseBenchPress,
	ExerciseSquat,
	ExerciseDeadlift,
	ExerciseShoulderPress,
	ExerciseLatPulldown,
	ExerciseBentOverRow,
	ExerciseArmCurl,
	ExerciseLegPress,
	ExerciseOther,
}

// NormalizeExercise maps a raw label onto the canonical set.
// Unknown labels become ExerciseOther; the function never fails.
func NormalizeExercise(raw string) Exercise {
	for _, ex := range AllExercises {
		if Exercise(raw) == ex {
			return ex
		}
	}
	return ExerciseOther
}
