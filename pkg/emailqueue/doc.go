// Package emailqueue serialises outbound email work.
//
// Queue accepts (jobType, Job) pairs from any number of goroutines and
// processes them one at a time, in acceptance order. For each job it:
//
//  1. checks the template exists, otherwise logs
//     "Email template not found: <name>" and drops the job
//  2. reads and renders it, after formatting the createdAt variable as
//     "02/01/2006 à 15:04" in Europe/Paris time
//  3. uses variables["subject"] or DefaultSubject as the subject
//  4. sends through the configured email.EmailSender, tagged with jobType
//
// Any error is logged with the "Email job failed" prefix and the job is
// discarded. The queue then moves on to the next job.
//
//	q := emailqueue.New(store, renderer, sender, emailqueue.WithLogger(log))
//	q.Add(ctx, "sendAdminNotifEmail", emailqueue.Job{
//	    To:        "admin@staka-livres.fr",
//	    Template:  "admin-message.hbs",
//	    Variables: map[string]any{"title": "Nouveau message client"},
//	})
//	defer q.Close(shutdownCtx)
package emailqueue
