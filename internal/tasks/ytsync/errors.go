package ytsync

import "errors"

// ErrAlreadyRunning is returned by RunOnce while another invocation is in flight.
var ErrAlreadyRunning = errors.New("ytsync: invocation already running")
