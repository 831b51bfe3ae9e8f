package schedule

import "github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"

// DBExecutor is satisfied by *dbmetrics.DB and by open transactions
type DBExecutor = dbmetrics.DBExecutor
