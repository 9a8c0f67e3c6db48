package session

import "github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
