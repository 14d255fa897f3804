// Package demo provides fixture-backed implementations of the repository
// interfaces. Demo sessions are served entirely from these fixtures: the
// same filters, limits and visibility rules are applied in-process, so a
// demo session behaves exactly like a live one without touching the
// database.
package demo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/notification"
	"github.com/crm/backend/internal/domain/shared"
)

// ActivityTimeLabel is the fixed relative-time label shown for demo
// activities. Fixture timestamps are synthetic, so a computed "time ago"
// would be misleading.
const ActivityTimeLabel = "Pred 1 hod"

// Dataset is a deterministic set of fixture rows. IDs are name-based UUIDs
// so repeated construction yields identical data; timestamps are laid out
// relative to the given instant so dashboard windows always contain rows.
type Dataset struct {
	Regions   []crm.Region
	Leads     []crm.Lead
	Clients   []crm.Client
	Quotes    []billing.Quote
	Invoices  []billing.Invoice
	Inventory []catalog.InventoryItem
}

func fixtureID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("crm-demo/"+name))
}

func entity(name string, createdAt time.Time) shared.BaseEntity {
	return shared.BaseEntity{
		ID:        fixtureID(name),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// NewDataset builds the demo dataset anchored at now
func NewDataset(now time.Time) *Dataset {
	west := fixtureID("region/west")
	east := fixtureID("region/east")
	salesRep := fixtureID("user/sales-rep")

	d := &Dataset{}

	d.Regions = []crm.Region{
		{BaseEntity: entity("region/west", now.AddDate(-1, 0, 0)), Name: "Západné Slovensko", Code: "ZS"},
		{BaseEntity: entity("region/east", now.AddDate(-1, 0, 0)), Name: "Východné Slovensko", Code: "VS"},
	}

	lead := func(name string, email, phone, company string, status crm.LeadStatus, source crm.LeadSource, region uuid.UUID, assigned *uuid.UUID, age time.Duration) crm.Lead {
		return crm.Lead{
			BaseEntity:     entity("lead/"+name, now.Add(-age)),
			Name:           name,
			Email:          email,
			Phone:          phone,
			Company:        company,
			Status:         status,
			SourceType:     source,
			RegionID:       &region,
			AssignedUserID: assigned,
		}
	}
	d.Leads = []crm.Lead{
		lead("Peter Kováč", "peter.kovac@example.sk", "+421 905 111 222", "Kováč Stav s.r.o.", crm.LeadStatusWon, crm.LeadSourceWeb, west, &salesRep, 26*24*time.Hour),
		lead("Jana Urbanová", "jana.urbanova@example.sk", "+421 907 333 444", "", crm.LeadStatusOffer, crm.LeadSourceShowroom, west, &salesRep, 19*24*time.Hour),
		lead("Marek Tóth", "marek.toth@example.sk", "+421 903 555 666", "Tóth Interiéry", crm.LeadStatusContacted, crm.LeadSourcePhone, east, nil, 12*24*time.Hour),
		lead("Eva Balážová", "eva.balazova@example.sk", "+421 902 777 888", "", crm.LeadStatusContacted, crm.LeadSourceReferral, west, &salesRep, 8*24*time.Hour),
		lead("Tomáš Hudák", "tomas.hudak@example.sk", "+421 908 999 000", "Hudák Reality", crm.LeadStatusNew, crm.LeadSourceWeb, east, nil, 5*24*time.Hour),
		lead("Lucia Šimková", "lucia.simkova@example.sk", "+421 911 123 456", "", crm.LeadStatusNew, crm.LeadSourceExhibit, west, &salesRep, 2*24*time.Hour),
		lead("Martin Polák", "martin.polak@example.sk", "+421 915 654 321", "Polák a syn", crm.LeadStatusNew, crm.LeadSourceWeb, east, nil, 6*time.Hour),
	}

	client := func(name, email, company string, status crm.ClientStatus, total string, region uuid.UUID, assigned *uuid.UUID, age time.Duration) crm.Client {
		return crm.Client{
			BaseEntity:     entity("client/"+name, now.Add(-age)),
			Name:           name,
			Email:          email,
			Company:        company,
			Status:         status,
			TotalValue:     money(total),
			RegionID:       &region,
			AssignedUserID: assigned,
		}
	}
	d.Clients = []crm.Client{
		client("Stavrek s.r.o.", "objednavky@stavrek.sk", "Stavrek s.r.o.", crm.ClientStatusActive, "48200", west, &salesRep, 300*24*time.Hour),
		client("Mramor Dizajn", "info@mramordizajn.sk", "Mramor Dizajn", crm.ClientStatusActive, "21500", west, &salesRep, 200*24*time.Hour),
		client("Pavol Gajdoš", "pavol.gajdos@example.sk", "", crm.ClientStatusCompleted, "6400", east, nil, 150*24*time.Hour),
		client("Rezidencia Tatry", "nakup@rezidenciatatry.sk", "Rezidencia Tatry a.s.", crm.ClientStatusProspect, "0", east, nil, 30*24*time.Hour),
	}

	stavrek := d.Clients[0].ID
	mramor := d.Clients[1].ID
	gajdos := d.Clients[2].ID

	quote := func(number string, clientID uuid.UUID, status billing.QuoteStatus, total string, region uuid.UUID, age time.Duration) billing.Quote {
		t := money(total)
		return billing.Quote{
			BaseEntity: entity("quote/"+number, now.Add(-age)),
			Number:     number,
			ClientID:   clientID,
			Status:     status,
			Subtotal:   t,
			Total:      t,
			RegionID:   &region,
		}
	}
	d.Quotes = []billing.Quote{
		quote("CP-2024-101", stavrek, billing.QuoteStatusAccepted, "5200", west, 24*time.Hour),
		quote("CP-2024-100", mramor, billing.QuoteStatusAccepted, "3800", west, 5*24*time.Hour),
		quote("CP-2024-099", gajdos, billing.QuoteStatusSent, "2100", east, 8*24*time.Hour),
		quote("CP-2024-095", stavrek, billing.QuoteStatusAccepted, "6100", west, 40*24*time.Hour),
		quote("CP-2024-094", mramor, billing.QuoteStatusRejected, "1500", west, 45*24*time.Hour),
		quote("CP-2024-090", gajdos, billing.QuoteStatusAccepted, "2900", east, 70*24*time.Hour),
		quote("CP-2024-087", stavrek, billing.QuoteStatusAccepted, "4400", west, 100*24*time.Hour),
		quote("CP-2024-083", mramor, billing.QuoteStatusAccepted, "3300", west, 130*24*time.Hour),
	}

	invoice := func(number string, clientID uuid.UUID, status billing.InvoiceStatus, total string, region uuid.UUID, age time.Duration) billing.Invoice {
		due := now.Add(-age).AddDate(0, 0, 14)
		return billing.Invoice{
			BaseEntity: entity("invoice/"+number, now.Add(-age)),
			Number:     number,
			ClientID:   clientID,
			Status:     status,
			Total:      money(total),
			DueDate:    &due,
			RegionID:   &region,
		}
	}
	d.Invoices = []billing.Invoice{
		invoice("FA-2024-210", stavrek, billing.InvoiceStatusPaid, "5200", west, 12*time.Hour),
		invoice("FA-2024-209", mramor, billing.InvoiceStatusSent, "3800", west, 3*24*time.Hour),
		invoice("FA-2024-205", gajdos, billing.InvoiceStatusPaid, "2900", east, 35*24*time.Hour),
		invoice("FA-2024-201", stavrek, billing.InvoiceStatusOverdue, "6100", west, 60*24*time.Hour),
		invoice("FA-2024-198", mramor, billing.InvoiceStatusPaid, "4400", west, 95*24*time.Hour),
	}

	item := func(name, sku, category string, qty, price, unit string, age time.Duration) catalog.InventoryItem {
		return catalog.InventoryItem{
			BaseEntity: entity("inventory/"+sku, now.Add(-age)),
			Name:       name,
			SKU:        sku,
			Category:   category,
			Quantity:   money(qty),
			Unit:       unit,
			UnitPrice:  money(price),
		}
	}
	d.Inventory = []catalog.InventoryItem{
		item("Žula Tarn svetlá 60x30", "ZU-TARN-6030", "žula", "148", "42.50", "m2", 400*24*time.Hour),
		item("Žula Impala leštená 60x60", "ZU-IMPA-6060", "žula", "92", "58.00", "m2", 380*24*time.Hour),
		item("Mramor Carrara C 61x30.5", "MR-CARR-6130", "mramor", "36", "89.90", "m2", 300*24*time.Hour),
		item("Travertín Classic 40x60", "TR-CLAS-4060", "travertín", "210", "31.20", "m2", 250*24*time.Hour),
		item("Pieskovec rezaný blok", "PI-BLOK-001", "pieskovec", "18", "240.00", "t", 220*24*time.Hour),
		item("Bridlica obkladová 15x60", "BR-OBKL-1560", "bridlica", "320", "24.80", "m2", 160*24*time.Hour),
	}

	return d
}

// NotificationsFor builds per-user fixture notifications. Demo
// notifications reference fixture entities so navigation works.
func (d *Dataset) NotificationsFor(userID uuid.UUID, now time.Time) []notification.Notification {
	note := func(name, title, message, entityType string, entityID uuid.UUID, read bool, age time.Duration) notification.Notification {
		id := entityID
		return notification.Notification{
			BaseEntity: entity("notification/"+userID.String()+"/"+name, now.Add(-age)),
			UserID:     userID,
			Title:      title,
			Message:    message,
			IsRead:     read,
			EntityType: entityType,
			EntityID:   &id,
		}
	}
	return []notification.Notification{
		note("quote-accepted", "Cenová ponuka prijatá", "Stavrek s.r.o. prijal ponuku CP-2024-101", "quote", d.Quotes[0].ID, false, time.Hour),
		note("new-lead", "Nový dopyt", "Martin Polák poslal dopyt cez web", "lead", d.Leads[6].ID, false, 6*time.Hour),
		note("invoice-paid", "Faktúra uhradená", "FA-2024-210 bola uhradená", "invoice", d.Invoices[0].ID, true, 12*time.Hour),
	}
}
