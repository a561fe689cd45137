package mail

import "gigflow/internal/models"

// HiredNotifier adapts the enqueuer to the hiring service's notifier, so a
// hire fans out to email alongside the realtime push.
type HiredNotifier struct {
	Enqueuer *Enqueuer
}

func (n *HiredNotifier) NotifyHired(gig *models.Gig, bid *models.Bid) {
	if bid.Freelancer == nil {
		return
	}
	_ = n.Enqueuer.EnqueueHired(bid.Freelancer.Email, bid.Freelancer.Name, gig.Title)
}
