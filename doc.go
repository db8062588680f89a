/*
Package vestibule drives the narrative onboarding that assigns a visitor their guide.

A session walks four steps: welcome, choose, confirm and reveal. The guide cards are
shuffled once per session. On touch devices a first tap previews a card and a second tap
on the same card selects it; with a pointer, hovering previews and a click selects.
Confirming leads to the reveal, which shows a welcome message keyed by the guide's tone.
After the reveal dwell the chosen guide ID is written to the selection store under
"selectedGuide" and the completion callback fires, exactly once and never after the
session was torn down.

# Architecture

The Engine owns what every session shares: the roster, the welcome message table, the
selection and snapshot stores and the lifecycle hooks. Sessions are onboarding.Flow
values. A host either drives one flow directly (Begin) or serves many visitors through a
session.Manager (Sessions), which persists snapshots so a session survives a restart.

# Usage

	eng, err := vestibule.New(vestibule.WithDwell(4 * time.Second))
	if err != nil {
		log.Fatal(err)
	}

	flow, err := eng.Begin(ctx, "", domain.CapabilityTouch, func(guideID string) {
		log.Println("assigned", guideID)
	})
	if err != nil {
		log.Fatal(err)
	}

	_ = flow.Proceed()        // welcome -> choose
	_ = flow.Activate("Vela") // preview
	_ = flow.Activate("Vela") // select -> confirm
	_ = flow.Confirm()        // confirm -> reveal
	<-flow.Done()
*/
package vestibule
