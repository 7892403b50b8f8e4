package services

import "time"

// nowFunc is swapped in tests to freeze time
var nowFunc = time.Now
