package slots

import "errors"

// ErrInternal возвращается, когда не удалось прочитать каталог, расписание или брони
var ErrInternal = errors.New("slots: internal error")
