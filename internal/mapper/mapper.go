package mapper

import (
	"sort"

	"github.com/seovista/crm-backend/internal/models"
)

func InvoiceToDomain(row models.Invoice) Invoice {
	return Invoice{
		ID:            row.ID,
		InvoiceNumber: row.InvoiceNumber,
		ClientID:      row.ClientID,
		PackID:        row.PackID,
		ProposalID:    row.ProposalID,
		BaseAmount:    row.BaseAmount,
		TaxRate:       row.TaxRate,
		TaxAmount:     row.TaxAmount,
		TotalAmount:   row.TotalAmount,
		Status:        row.Status,
		IssueDate:     row.IssueDate,
		DueDate:       row.DueDate,
		PaymentDate:   row.PaymentDate,
		Notes:         row.Notes,
		PDFURL:        row.PDFURL,
		ShareToken:    row.ShareToken,
		SharedAt:      row.SharedAt,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func InvoiceToStorage(inv Invoice) models.Invoice {
	return models.Invoice{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		PackID:        inv.PackID,
		ProposalID:    inv.ProposalID,
		BaseAmount:    inv.BaseAmount,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        inv.Status,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		PaymentDate:   inv.PaymentDate,
		Notes:         inv.Notes,
		PDFURL:        inv.PDFURL,
		ShareToken:    inv.ShareToken,
		SharedAt:      inv.SharedAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func InvoicesToDomain(rows []models.Invoice) []Invoice {
	out := make([]Invoice, 0, len(rows))
	for _, r := range rows {
		out = append(out, InvoiceToDomain(r))
	}
	return out
}

func ProposalToDomain(row models.Proposal) Proposal {
	return Proposal{
		ID:             row.ID,
		ClientID:       row.ClientID,
		PackID:         row.PackID,
		Title:          row.Title,
		Description:    row.Description,
		Status:         row.Status,
		CustomPrice:    row.CustomPrice,
		CustomFeatures: row.CustomFeatures,
		AIContent:      row.AIContent,
		ShareToken:     row.ShareToken,
		SentAt:         row.SentAt,
		ExpiresAt:      row.ExpiresAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func ProposalToStorage(p Proposal) models.Proposal {
	return models.Proposal{
		ID:             p.ID,
		ClientID:       p.ClientID,
		PackID:         p.PackID,
		Title:          p.Title,
		Description:    p.Description,
		Status:         p.Status,
		CustomPrice:    p.CustomPrice,
		CustomFeatures: p.CustomFeatures,
		AIContent:      p.AIContent,
		ShareToken:     p.ShareToken,
		SentAt:         p.SentAt,
		ExpiresAt:      p.ExpiresAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ProposalsToDomain(rows []models.Proposal) []Proposal {
	out := make([]Proposal, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProposalToDomain(r))
	}
	return out
}

// ContractToDomain sorts sections by position so the domain shape is always
// ordered regardless of how the store returned the join.
func ContractToDomain(row models.Contract) Contract {
	sections := make([]ContractSection, 0, len(row.Sections))
	for _, s := range row.Sections {
		sections = append(sections, ContractSection{Position: s.Position, Title: s.Title, Content: s.Content})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Position < sections[j].Position })
	return Contract{
		ID:                   row.ID,
		ClientID:             row.ClientID,
		Title:                row.Title,
		StartDate:            row.StartDate,
		EndDate:              row.EndDate,
		SetupFee:             row.SetupFee,
		MonthlyFee:           row.MonthlyFee,
		Status:               row.Status,
		Sections:             sections,
		SignedByClient:       row.SignedByClient,
		SignedByProfessional: row.SignedByProfessional,
		SignedAt:             row.SignedAt,
		PDFURL:               row.PDFURL,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}

// ContractToStorage leaves section IDs unset; the service assigns them when
// replacing the section rows.
func ContractToStorage(c Contract) models.Contract {
	sections := make([]models.ContractSection, 0, len(c.Sections))
	for _, s := range c.Sections {
		sections = append(sections, models.ContractSection{ContractID: c.ID, Position: s.Position, Title: s.Title, Content: s.Content})
	}
	return models.Contract{
		ID:                   c.ID,
		ClientID:             c.ClientID,
		Title:                c.Title,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
		SetupFee:             c.SetupFee,
		MonthlyFee:           c.MonthlyFee,
		Status:               c.Status,
		Sections:             sections,
		SignedByClient:       c.SignedByClient,
		SignedByProfessional: c.SignedByProfessional,
		SignedAt:             c.SignedAt,
		PDFURL:               c.PDFURL,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func DocumentToDomain(row models.ClientDocument) ClientDocument {
	return ClientDocument{
		ID:             row.ID,
		ClientID:       row.ClientID,
		Name:           row.Name,
		Type:           row.Type,
		URL:            row.URL,
		UploadDate:     row.UploadDate,
		AnalysisStatus: row.AnalysisStatus,
		Content:        row.Content,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func DocumentToStorage(d ClientDocument) models.ClientDocument {
	return models.ClientDocument{
		ID:             d.ID,
		ClientID:       d.ClientID,
		Name:           d.Name,
		Type:           d.Type,
		URL:            d.URL,
		UploadDate:     d.UploadDate,
		AnalysisStatus: d.AnalysisStatus,
		Content:        d.Content,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func KeywordToDomain(row models.Keyword) Keyword {
	return Keyword{
		ID:               row.ID,
		ClientID:         row.ClientID,
		Keyword:          row.Keyword,
		Position:         row.Position,
		PreviousPosition: row.PreviousPosition,
		SearchVolume:     row.SearchVolume,
		TargetURL:        row.TargetURL,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func KeywordToStorage(k Keyword) models.Keyword {
	return models.Keyword{
		ID:               k.ID,
		ClientID:         k.ClientID,
		Keyword:          k.Keyword,
		Position:         k.Position,
		PreviousPosition: k.PreviousPosition,
		SearchVolume:     k.SearchVolume,
		TargetURL:        k.TargetURL,
		CreatedAt:        k.CreatedAt,
		UpdatedAt:        k.UpdatedAt,
	}
}

func KeywordsToDomain(rows []models.Keyword) []Keyword {
	out := make([]Keyword, 0, len(rows))
	for _, r := range rows {
		out = append(out, KeywordToDomain(r))
	}
	return out
}
