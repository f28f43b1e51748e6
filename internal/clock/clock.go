package clock

import "time"

// Now returns the server wall-clock time used by scheduling rules. It is a
// variable so tests can pin the current instant.
var Now = time.Now
