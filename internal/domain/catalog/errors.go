package catalog

import "errors"

var ErrCategoryNotFound = errors.New("no such category")
