package player

import "time"

// revealTickMsg is sent when the post-submit reveal pause ends.
type revealTickMsg time.Time

// restartMsg is sent from the results screen to replay the quiz.
type restartMsg struct{}
