package services

// ServiceContainer holds all service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	VAT       VATSvcFacade
	Reporting ReportingSvcFacade
	Audit     AuditSvcFacade
}
