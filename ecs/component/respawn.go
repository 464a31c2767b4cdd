package component

// EnemyRespawn knocks an enemy back when a bullet hits it and teleports it to
// the spawn point after WaitTime seconds. Further hits while Hit is set do
// not restart the timer.
type EnemyRespawn struct {
	SpawnX      float64
	SpawnY      float64
	WaitTime    float64
	BulletForce float64

	Hit   bool
	Timer float64
}

var EnemyRespawnComponent = NewComponent[EnemyRespawn]()
