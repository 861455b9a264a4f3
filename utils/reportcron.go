package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abdo261/server-pokemon/reports"
)

// SendDailyReport mails the totals of the current open day to the report
// address. Scheduled for the end of every evening; a closed or missing day
// means the store did not open, so there is nothing to send.
func SendDailyReport() {
	log.Println("daily report: starting")

	to := os.Getenv("REPORT_EMAIL")
	if to == "" {
		log.Println("daily report: REPORT_EMAIL not set, skipping")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	day, err := reports.LatestDay(ctx)
	if err != nil {
		log.Printf("daily report: %v\n", err)
		return
	}
	if day == nil || day.StopAt != nil {
		log.Println("daily report: no open day, skipping")
		return
	}

	report, err := reports.Aggregate(ctx, reports.Window{GTE: day.StartAt}, reports.ModeTotalsWithQuantity)
	if err != nil {
		log.Printf("daily report: %v\n", err)
		return
	}

	body := formatDailyReport(day.StartAt, report)
	if err := SendEmail(to, "Rapport de la journée", body); err != nil {
		log.Printf("daily report: send email: %v\n", err)
		return
	}

	log.Println("daily report: sent")
}

func formatDailyReport(startAt time.Time, r *reports.Report) string {
	t := r.TotalPayments
	return fmt.Sprintf(
		"Journée ouverte le %s\n\n"+
			"Paiements: %d (sur place: %d, en ligne: %d)\n"+
			"Produits vendus: %d\n"+
			"Offres vendues: %d\n"+
			"Commandes livrées: %d\n"+
			"Commandes refusées: %d\n",
		startAt.Format("02/01/2006 15:04"),
		t.All.Count, t.Offline.Count, t.Online.Count,
		*t.All.TotalQuantityProducts,
		*t.All.TotalQuantityOffers,
		*r.DeliveredOrders,
		*r.ReturnedOrders,
	)
}
