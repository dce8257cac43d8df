package main

import "finance-ledger/internal/bootstrap/notifier_service"

func main() { notifier_service.StartNotifierService() }
