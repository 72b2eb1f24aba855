/*
Package resilience provides a circuit breaker for external collaborators.

The shell executor wraps process spawning in a Breaker: when the shell
binary repeatedly fails to start, further calls fail fast with ErrOpen until
the cooldown passes and a single probe succeeds.

	breaker := resilience.New("executor", resilience.Settings{
		Threshold: 5,
		Cooldown:  30 * time.Second,
	})

	err := breaker.Do(func() error {
		return cmd.Run()
	}, isSpawnFailure)

States:

	Closed --[threshold failures]--> Open --[cooldown]--> Half-Open
	   ^                                ^                     |
	   |                                +------[failure]------+
	   +-------------------[success]--------------------------+
*/
package resilience
