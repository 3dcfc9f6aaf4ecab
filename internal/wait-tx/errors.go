package waittx

import "errors"

var errNoStrategies = errors.New("no confirmation strategy configured")
