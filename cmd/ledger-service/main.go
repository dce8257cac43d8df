package main

import "finance-ledger/internal/bootstrap/ledger_service"

// @title Finance Ledger API
// @version 1.0
// @description Учет личных финансов: счета, транзакции, бюджеты и цели накоплений
// @host localhost:8080
// @BasePath /api/v1
func main() { ledger_service.StartLedgerService() }
